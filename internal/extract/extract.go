// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract pulls plain text out of lease documents. It is the
// pipeline's boundary with file formats: PDF via the pdf reader library,
// DOCX via the OOXML zip container, TXT with an encoding fallback chain.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrUnsupportedFormat means the file extension is not one we extract.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNotFound means the input file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrNoExtractableText means every page failed extraction. Callers should
	// degrade to an empty analysis rather than abort.
	ErrNoExtractableText = errors.New("no extractable text")
)

// SupportedExtensions lists the formats Extract accepts.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

// Extract reads the document at path and returns its cleaned plain text and
// the detected extension (lowercased, with dot).
func Extract(path string) (string, string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		text, err := extractPDF(path)
		return text, ext, err
	case ".docx":
		text, err := extractDOCX(path)
		return text, ext, err
	case ".txt":
		text, err := extractTXT(path)
		return text, ext, err
	default:
		return "", ext, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions, ", "))
	}
}

var (
	multiNewline   = regexp.MustCompile(`\n{2,}`)
	multiSpace     = regexp.MustCompile(` {2,}`)
	missingPadding = regexp.MustCompile(`\.([A-Z])`)
	periodSpacing  = regexp.MustCompile(`\. +`)
)

// cleanText normalizes extracted text while keeping sentence structure:
// newline runs collapse to one, space runs to one, replacement characters
// from broken encodings disappear, and periods regain their trailing space.
func cleanText(text string) string {
	text = multiNewline.ReplaceAllString(text, "\n")
	text = multiSpace.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "�", " ")
	text = missingPadding.ReplaceAllString(text, ". $1")
	text = periodSpacing.ReplaceAllString(text, ". ")
	return strings.TrimSpace(text)
}

// Stats summarizes an extracted document for reporting.
type Stats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Sentences  int `json:"sentences"`
	Paragraphs int `json:"paragraphs"`
}

var sentenceSplit = regexp.MustCompile(`[.!?।]+`)

// TextStats computes basic size statistics over extracted text.
func TextStats(text string) Stats {
	s := Stats{
		Characters: len(text),
		Words:      len(strings.Fields(text)),
	}
	for _, frag := range sentenceSplit.Split(text, -1) {
		if len(strings.TrimSpace(frag)) > 10 {
			s.Sentences++
		}
	}
	for _, p := range strings.Split(text, "\n") {
		if strings.TrimSpace(p) != "" {
			s.Paragraphs++
		}
	}
	return s
}
