// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"lease-lens/internal/extract"
	"lease-lens/internal/observability"
)

// lineHeightFactor pads glyph boxes vertically so highlights cover ascenders
// and descenders.
const lineHeightFactor = 1.2

type pdfPage struct {
	number int
	text   string
	layout Layout
}

func (p *pdfPage) Number() int       { return p.number }
func (p *pdfPage) PlainText() string { return p.text }
func (p *pdfPage) Layout() *Layout   { return &p.layout }

type pdfDocument struct {
	path       string
	pages      []Page
	highlights []Highlight
	observer   *observability.Observer
}

// OpenPDF validates the file and reads every page's text geometry eagerly.
// Pages whose text extraction fails are kept with an empty layout so page
// numbering stays aligned with the source document.
func OpenPDF(path string, observer *observability.Observer) (Document, error) {
	stop := observer.StartTiming("render", "open")

	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
		stop(false, nil)
		return nil, fmt.Errorf("render: validating %s: %w", path, err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		stop(false, nil)
		return nil, fmt.Errorf("render: opening %s: %w", path, err)
	}
	defer f.Close()

	doc := &pdfDocument{path: path, observer: observer}
	for i := 1; i <= r.NumPage(); i++ {
		page := &pdfPage{number: i}
		p := r.Page(i)
		if !p.V.IsNull() {
			page.layout = readLayout(p)
			page.text = plainText(p, page.layout)
		}
		doc.pages = append(doc.pages, page)
	}

	stop(true, map[string]any{"pages": len(doc.pages)})
	return doc, nil
}

func (d *pdfDocument) Pages() []Page { return d.pages }

func (d *pdfDocument) AddHighlight(page int, r Rect, c Color) {
	d.highlights = append(d.highlights, Highlight{Page: page, Rect: r, Color: c})
}

func (d *pdfDocument) Save(path string) error {
	stop := d.observer.StartTiming("render", "save")

	if len(d.highlights) == 0 {
		err := copyFile(d.path, path)
		stop(err == nil, map[string]any{"highlights": 0})
		return err
	}

	sizes := make([]Rect, len(d.pages))
	for i, p := range d.pages {
		layout := p.Layout()
		sizes[i] = Rect{W: layout.Width, H: layout.Height}
	}

	if err := writeOverlay(d.path, path, sizes, d.highlights); err != nil {
		// The original document is still a valid deliverable; hand it
		// through rather than failing the whole run.
		d.observer.Event("render", "overlay_fallback", false, map[string]any{"error": err.Error()})
		err = copyFile(d.path, path)
		stop(err == nil, map[string]any{"fallback": true})
		return err
	}

	stop(true, map[string]any{"highlights": len(d.highlights)})
	return nil
}

func (d *pdfDocument) Close() error { return nil }

// readLayout converts one page's row geometry into top-left coordinates.
func readLayout(p pdf.Page) Layout {
	w, h := pageSize(p)
	layout := Layout{Width: w, Height: h}

	rows, err := p.GetTextByRow()
	if err != nil {
		return layout
	}

	for _, row := range rows {
		if row == nil || len(row.Content) == 0 {
			continue
		}
		text := extract.JoinRowText(row.Content)
		if strings.TrimSpace(text) == "" {
			continue
		}
		layout.Lines = append(layout.Lines, Line{Text: text, Rect: rowRect(row.Content, h)})
	}

	// Reading order: top of page first.
	sort.SliceStable(layout.Lines, func(i, j int) bool {
		return layout.Lines[i].Rect.Y < layout.Lines[j].Rect.Y
	})
	return layout
}

// rowRect bounds one row's glyphs, converting the PDF's y-up baseline
// coordinates to a top-left box.
func rowRect(elements []pdf.Text, pageHeight float64) Rect {
	minX, maxX := elements[0].X, elements[0].X+elements[0].W
	maxY := elements[0].Y
	fontSize := elements[0].FontSize

	for _, e := range elements[1:] {
		if e.X < minX {
			minX = e.X
		}
		if e.X+e.W > maxX {
			maxX = e.X + e.W
		}
		if e.Y > maxY {
			maxY = e.Y
		}
		if e.FontSize > fontSize {
			fontSize = e.FontSize
		}
	}
	if fontSize <= 0 {
		fontSize = 12
	}

	height := fontSize * lineHeightFactor
	return Rect{
		X: minX,
		Y: pageHeight - maxY - fontSize,
		W: maxX - minX,
		H: height,
	}
}

// pageSize resolves the MediaBox, walking up the page tree for inherited
// boxes. Letter size is the fallback for degenerate documents.
func pageSize(p pdf.Page) (w, h float64) {
	node := p.V
	for !node.IsNull() {
		if mb := node.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			w = mb.Index(2).Float64() - mb.Index(0).Float64()
			h = mb.Index(3).Float64() - mb.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		node = node.Key("Parent")
	}
	return 612, 792
}

// plainText prefers the ordered layout text and falls back to the library's
// content-stream walk.
func plainText(p pdf.Page, layout Layout) string {
	if len(layout.Lines) > 0 {
		var b strings.Builder
		for _, ln := range layout.Lines {
			b.WriteString(ln.Text)
			b.WriteString("\n")
		}
		return b.String()
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("render: reading %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("render: writing %s: %w", dst, err)
	}
	return nil
}
