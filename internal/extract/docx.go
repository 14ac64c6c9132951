// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// extractDOCX reads word/document.xml from the OOXML container and walks its
// token stream: w:t carries text, w:p ends a paragraph, w:tab and w:br map to
// whitespace. Table cell text arrives through the same elements, so rows come
// out as regular paragraphs.
func extractDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening docx container: %w", err)
	}
	defer zr.Close()

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("opening document part: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx container has no word/document.xml")
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc)
	if err != nil {
		return "", err
	}
	if len(paragraphs) == 0 {
		return "", ErrNoExtractableText
	}
	return cleanText(strings.Join(paragraphs, "\n\n")), nil
}

func docxParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inText := false

	flush := func() {
		para := strings.TrimSpace(current.String())
		current.Reset()
		if para == "" {
			return
		}
		paragraphs = append(paragraphs, ensureParagraphTerminated(para))
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteString(" ")
			case "br":
				current.WriteString(" ")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	flush()
	return paragraphs, nil
}

// ensureParagraphTerminated appends a period to sentence-like paragraphs so
// the sentence extractor sees proper boundaries. Headings (short or
// all-caps) are left alone.
func ensureParagraphTerminated(para string) string {
	if strings.HasSuffix(para, ".") || strings.HasSuffix(para, "!") || strings.HasSuffix(para, "?") {
		return para
	}
	if len(para) <= 20 || isAllUpper(para) {
		return para
	}
	return para + "."
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
