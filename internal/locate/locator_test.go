// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package locate

import (
	"strings"
	"testing"

	"lease-lens/internal/render"
)

type fakePage struct {
	number int
	layout render.Layout
}

func (p *fakePage) Number() int            { return p.number }
func (p *fakePage) PlainText() string      { return "" }
func (p *fakePage) Layout() *render.Layout { return &p.layout }

type fakeDoc struct {
	pages []render.Page
}

func (d *fakeDoc) Pages() []render.Page                        { return d.pages }
func (d *fakeDoc) AddHighlight(int, render.Rect, render.Color) {}
func (d *fakeDoc) Save(string) error                           { return nil }
func (d *fakeDoc) Close() error                                { return nil }

func docWithLines(pageLines ...[]string) *fakeDoc {
	doc := &fakeDoc{}
	for i, lines := range pageLines {
		page := &fakePage{number: i + 1, layout: render.Layout{Width: 612, Height: 792}}
		for j, text := range lines {
			page.layout.Lines = append(page.layout.Lines, render.Line{
				Text: text,
				Rect: render.Rect{X: 40, Y: float64(100 + j*20), W: 500, H: 14},
			})
		}
		doc.pages = append(doc.pages, page)
	}
	return doc
}

func TestLocate_Literal(t *testing.T) {
	doc := docWithLines([]string{
		"This agreement is made between the parties.",
		"The tenant shall pay rent by the fifth of every month.",
	})
	loc := New(0.8, 0.7, nil)

	res := loc.Locate(doc, "tenant shall pay rent", false)
	if !res.Found || res.Page != 1 || res.Stage != StageLiteral {
		t.Fatalf("result = %+v, want literal hit on page 1", res)
	}
	if len(res.Rects) != 1 {
		t.Errorf("rects = %d, want 1", len(res.Rects))
	}
}

func TestLocate_PageShortCircuit(t *testing.T) {
	// The same sentence appears on both pages; only page 1 may report it.
	lines := []string{"The landlord may inspect the premises with notice."}
	doc := docWithLines(lines, lines)
	loc := New(0.8, 0.7, nil)

	res := loc.Locate(doc, "landlord may inspect", false)
	if !res.Found || res.Page != 1 {
		t.Fatalf("result = %+v, want page 1 only", res)
	}
}

func TestLocate_SecondPage(t *testing.T) {
	doc := docWithLines(
		[]string{"Nothing relevant here."},
		[]string{"The deposit is forfeited upon breach of this agreement."},
	)
	loc := New(0.8, 0.7, nil)

	res := loc.Locate(doc, "deposit is forfeited upon breach", false)
	if !res.Found || res.Page != 2 {
		t.Fatalf("result = %+v, want hit on page 2", res)
	}
}

func TestLocate_PunctStripped(t *testing.T) {
	doc := docWithLines([]string{"The tenant (hereinafter, “Lessee”) agrees to the terms."})
	loc := New(0.8, 0.7, nil)

	res := loc.Locate(doc, "tenant hereinafter Lessee agrees", false)
	if !res.Found {
		t.Fatal("punctuation differences should not prevent a match")
	}
	if res.Stage != StagePunctStripped {
		t.Errorf("stage = %s, want %s", res.Stage, StagePunctStripped)
	}
}

func TestLocate_LineFuzzy(t *testing.T) {
	doc := docWithLines([]string{"The tenant must maintain the garden and the lawn weekly."})
	loc := New(0.8, 0.7, nil)

	// Same words, one swapped: literal and punct-stripped fail, word overlap
	// clears 0.8.
	res := loc.Locate(doc, "The tenant must maintain the lawn and the garden weekly.", false)
	if !res.Found || res.Stage != StageLineFuzzy {
		t.Fatalf("result = %+v, want line-fuzzy hit", res)
	}
}

func TestLocate_AggressiveLeadsWithFuzzy(t *testing.T) {
	doc := docWithLines([]string{"ಬಾಡಿಗೆದಾರರು ಪ್ರತಿ ತಿಂಗಳ ಐದನೇ ತಾರೀಖಿನೊಳಗೆ ಬಾಡಿಗೆ ಪಾವತಿಸಬೇಕು"})
	loc := New(0.8, 0.7, nil)

	res := loc.Locate(doc, "ಬಾಡಿಗೆದಾರರು ಪ್ರತಿ ತಿಂಗಳ ಐದನೇ ತಾರೀಖಿನೊಳಗೆ ಬಾಡಿಗೆ ಪಾವತಿಸಬೇಕು", true)
	if !res.Found || res.Stage != StageAggressiveFuzzy {
		t.Fatalf("result = %+v, want aggressive fuzzy hit", res)
	}
}

func TestLocate_PartialWords(t *testing.T) {
	// The page line carries only the leading portion of the clause.
	doc := docWithLines([]string{"Clause 7: The lessee shall bear all costs of repair and"})
	loc := New(0.99, 0.99, nil) // fuzzy stages disabled by impossible bars

	clause := "The lessee shall bear all costs of repair and maintenance arising from negligence"
	res := loc.Locate(doc, clause, false)
	if !res.Found || res.Stage != StagePartialWords {
		t.Fatalf("result = %+v, want partial-words hit", res)
	}
}

func TestLocate_MiddlePortion(t *testing.T) {
	clause := "PREAMBLE-GARBLED-XXXX the core obligation to remit the security deposit in full TRAILER-GARBLED-YYYY"
	runes := []rune(clause)
	middle := strings.TrimSpace(string(runes[len(runes)/4 : 3*len(runes)/4]))

	doc := docWithLines([]string{"prefix text " + middle + " suffix text"})
	loc := New(0.99, 0.99, nil)

	res := loc.Locate(doc, clause, false)
	if !res.Found || res.Stage != StageMiddlePortion {
		t.Fatalf("result = %+v, want middle-portion hit", res)
	}
}

func TestLocate_NotFound(t *testing.T) {
	doc := docWithLines([]string{"Completely different content."})
	loc := New(0.8, 0.7, nil)

	res := loc.Locate(doc, "the quick brown fox jumps over the lazy dog", false)
	if res.Found {
		t.Fatalf("result = %+v, want not found", res)
	}
}

func TestLocate_EmptyText(t *testing.T) {
	doc := docWithLines([]string{"Some line."})
	loc := New(0.8, 0.7, nil)

	if res := loc.Locate(doc, "   ", false); res.Found {
		t.Error("blank clause must not locate")
	}
}
