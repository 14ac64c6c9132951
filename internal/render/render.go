// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package render reads page geometry out of PDF documents and writes
// highlighted copies back. Coordinates throughout the package are top-left
// origin with y growing downward, in points; the PDF-native bottom-left
// convention is converted at the read boundary.
package render

import (
	"fmt"
	"strings"

	"lease-lens/internal/textnorm"
)

// Rect is an axis-aligned box in page coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Union returns the smallest rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	x1, y1 := r.X, r.Y
	if o.X < x1 {
		x1 = o.X
	}
	if o.Y < y1 {
		y1 = o.Y
	}
	x2, y2 := r.X+r.W, r.Y+r.H
	if o.X+o.W > x2 {
		x2 = o.X + o.W
	}
	if o.Y+o.H > y2 {
		y2 = o.Y + o.H
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Line is one visual text line with its bounding box.
type Line struct {
	Text string
	Rect Rect
}

// Layout is the positioned text of one page.
type Layout struct {
	Width  float64
	Height float64
	Lines  []Line
}

// SearchLiteral finds case-insensitive occurrences of text within single
// lines and returns their boxes. The horizontal extent of a partial-line hit
// is interpolated by rune position; exact glyph metrics are not tracked at
// this level.
func (l *Layout) SearchLiteral(text string) []Rect {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}

	var hits []Rect
	for _, line := range l.Lines {
		hay := strings.ToLower(line.Text)
		offset := 0
		for {
			idx := strings.Index(hay[offset:], needle)
			if idx == -1 {
				break
			}
			start := offset + idx
			hits = append(hits, line.sliceRect(start, start+len(needle)))
			offset = start + len(needle)
		}
	}
	return hits
}

// sliceRect interpolates the box of a byte range within the line.
func (ln Line) sliceRect(startByte, endByte int) Rect {
	total := len(ln.Text)
	if total == 0 || (startByte == 0 && endByte >= total) {
		return ln.Rect
	}
	fracStart := float64(startByte) / float64(total)
	fracEnd := float64(endByte) / float64(total)
	return Rect{
		X: ln.Rect.X + ln.Rect.W*fracStart,
		Y: ln.Rect.Y,
		W: ln.Rect.W * (fracEnd - fracStart),
		H: ln.Rect.H,
	}
}

// Page is one readable document page.
type Page interface {
	Number() int
	PlainText() string
	Layout() *Layout
}

// Highlight is a pending translucent box to draw on a page.
type Highlight struct {
	Page  int
	Rect  Rect
	Color Color
}

// Document is an open source PDF plus the highlights accumulated against it.
type Document interface {
	Pages() []Page
	AddHighlight(page int, r Rect, c Color)
	// Save writes a highlighted copy to path. With no highlights the
	// original bytes are copied through unchanged.
	Save(path string) error
	Close() error
}

// Color is an RGB fill color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// ParseHexColor parses "#rrggbb".
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("render: invalid hex color %q", s)
	}
	var c Color
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("render: invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// NormalizedLines returns the fold-normalized text of every line on the page,
// parallel to Layout().Lines. Locators match against these instead of
// re-normalizing per probe.
func NormalizedLines(p Page) []string {
	layout := p.Layout()
	out := make([]string, len(layout.Lines))
	for i, ln := range layout.Lines {
		out[i] = textnorm.Fold(ln.Text)
	}
	return out
}
