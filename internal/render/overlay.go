// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// highlightAlpha keeps the underlying text legible through the fill.
const highlightAlpha = 0.35

// writeOverlay rebuilds the document page by page, importing each original
// page as a template and drawing the translucent highlight boxes on top.
// sizes carries per-page dimensions indexed from page 1 at sizes[0].
func writeOverlay(srcPath, dstPath string, sizes []Rect, highlights []Highlight) error {
	srcData, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("render: reading %s: %w", srcPath, err)
	}

	byPage := make(map[int][]Highlight, len(highlights))
	for _, hl := range highlights {
		byPage[hl.Page] = append(byPage[hl.Page], hl)
	}

	doc := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(srcData))

	for i, size := range sizes {
		pageNum := i + 1
		w, h := size.W, size.H
		if w <= 0 || h <= 0 {
			w, h = 612, 792
		}

		doc.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		tpl := importer.ImportPageFromStream(doc, &rs, pageNum, "/MediaBox")
		importer.UseImportedTemplate(doc, tpl, 0, 0, w, 0)

		for _, hl := range byPage[pageNum] {
			doc.SetAlpha(highlightAlpha, "Normal")
			doc.SetFillColor(int(hl.Color.R), int(hl.Color.G), int(hl.Color.B))
			doc.Rect(hl.Rect.X, hl.Rect.Y, hl.Rect.W, hl.Rect.H, "F")
			doc.SetAlpha(1, "Normal")
		}
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("render: drawing overlay: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return fmt.Errorf("render: writing overlay: %w", err)
	}
	return os.WriteFile(dstPath, buf.Bytes(), 0644)
}
