// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sentence builds the candidate pool of document sentences that
// classifier fragments are reconciled against. Two independent segmentation
// passes feed the pool: a sentence-boundary scan and a paragraph heuristic.
// Their union, deduplicated by folded text, preserves first-seen order.
package sentence

import (
	"regexp"
	"strings"
	"unicode"

	"lease-lens/internal/textnorm"
)

const (
	// minSentenceLen is the minimum normalized length for a pool entry.
	minSentenceLen = 15
	// minParagraphLen filters out headings and stray labels.
	minParagraphLen = 20
	// longParagraphLen is the point at which a paragraph is split further.
	longParagraphLen = 200
)

var subSentenceSplit = regexp.MustCompile(`[.!?]+\s+`)

// Extract returns the deduplicated, ordered sentence pool for text. An empty
// or unsegmentable input yields an empty pool, never an error.
func Extract(text string) []string {
	boundary := boundaryPass(text)
	paragraph := paragraphPass(text)

	// Boundary pass wins on duplicates by coming first.
	var pool []string
	seen := make(map[string]struct{})
	for _, s := range append(boundary, paragraph...) {
		normalized := textnorm.Normalize(s)
		if len(normalized) <= minSentenceLen {
			continue
		}
		key := strings.ToLower(normalized)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		pool = append(pool, s)
	}
	return pool
}

// boundaryPass scans for sentence terminators. A terminator ends a sentence
// when followed by whitespace or end of input, unless it looks like an
// abbreviation or an initial ("Mr.", "No.").
func boundaryPass(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	flush := func(end int) {
		s := strings.TrimSpace(string(runes[start:end]))
		if len(s) > minSentenceLen {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !isTerminator(r) {
			continue
		}
		// Swallow runs of terminators ("...", "?!").
		j := i
		for j+1 < len(runes) && isTerminator(runes[j+1]) {
			j++
		}
		atEnd := j+1 >= len(runes)
		if !atEnd && !unicode.IsSpace(runes[j+1]) {
			i = j
			continue
		}
		if r == '.' && i == j && isAbbreviation(runes, start, i) {
			i = j
			continue
		}
		flush(j + 1)
		i = j
	}
	if start < len(runes) {
		flush(len(runes))
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '।'
}

// isAbbreviation reports whether the period at pos ends a short token such as
// "Mr." or a single initial.
func isAbbreviation(runes []rune, start, pos int) bool {
	wordStart := pos
	for wordStart > start && !unicode.IsSpace(runes[wordStart-1]) {
		wordStart--
	}
	return pos-wordStart <= 2
}

// paragraphPass splits on blank lines. Long paragraphs are split again on
// terminator-plus-space; every fragment gets its terminal punctuation back so
// the pool entries read as sentences.
func paragraphPass(text string) []string {
	var sentences []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) <= minParagraphLen {
			continue
		}
		if len(para) > longParagraphLen {
			for _, sub := range subSentenceSplit.Split(para, -1) {
				sub = strings.TrimSpace(sub)
				if len(sub) <= minSentenceLen {
					continue
				}
				sentences = append(sentences, ensureTerminated(sub))
			}
			continue
		}
		sentences = append(sentences, ensureTerminated(para))
	}
	return sentences
}

func ensureTerminated(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}
