// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Text layout constants for regenerated documents: letter pages, a plain
// monospaced column wide enough for lease prose.
const (
	textPageWidth  = 612.0
	textPageHeight = 792.0
	textMargin     = 40.0
	textLineHeight = 15.0
	textFontSize   = 11.0
	textWrapWidth  = 80
)

// BuildTextPDF lays plain text (from TXT or DOCX extraction) onto a fresh
// PDF at path so the highlight pipeline can treat every document uniformly.
// Runes outside Latin-1 are substituted; the regenerated page is a working
// surface for highlights, not a faithful rendition of the upload.
func BuildTextPDF(text, path string) error {
	doc := fpdf.New("P", "pt", "", "")
	doc.SetFont("Helvetica", "", textFontSize)

	encoder := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())

	y := textPageHeight // force a page on the first line
	for _, line := range wrapText(text, textWrapWidth) {
		if y+textLineHeight > textPageHeight-textMargin {
			doc.AddPageFormat("P", fpdf.SizeType{Wd: textPageWidth, Ht: textPageHeight})
			y = textMargin + textLineHeight
		}
		encoded, err := encoder.String(line)
		if err != nil {
			encoded = line
		}
		doc.Text(textMargin, y, encoded)
		y += textLineHeight
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("render: laying out text: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return fmt.Errorf("render: writing text pdf: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// wrapText breaks text into lines at most width runes wide, wrapping on word
// boundaries. Blank lines separate paragraphs and are preserved.
func wrapText(text string, width int) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, " \t")
		if strings.TrimSpace(raw) == "" {
			out = append(out, "")
			continue
		}

		var line strings.Builder
		lineLen := 0
		for _, word := range strings.Fields(raw) {
			wordLen := len([]rune(word))
			if lineLen > 0 && lineLen+1+wordLen > width {
				out = append(out, line.String())
				line.Reset()
				lineLen = 0
			}
			if lineLen > 0 {
				line.WriteString(" ")
				lineLen++
			}
			line.WriteString(word)
			lineLen += wordLen
		}
		if line.Len() > 0 {
			out = append(out, line.String())
		}
	}
	return out
}
