// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package locate finds clause text on document pages. Extracted analysis text
// and the glyphs a PDF actually carries rarely agree byte for byte, so a
// cascade of increasingly permissive searches runs per page; the first page
// with any hit wins and later pages are never probed.
package locate

import (
	"strings"
	"unicode"

	"lease-lens/internal/language"
	"lease-lens/internal/match"
	"lease-lens/internal/observability"
	"lease-lens/internal/render"
	"lease-lens/internal/textnorm"
)

// Stage identifies which search strategy produced the hit.
type Stage string

const (
	StageAggressiveFuzzy Stage = "aggressive_fuzzy"
	StageLiteral         Stage = "literal"
	StagePunctStripped   Stage = "punct_stripped"
	StageLineFuzzy       Stage = "line_fuzzy"
	StagePartialWords    Stage = "partial_words"
	StageMiddlePortion   Stage = "middle_portion"
)

const (
	// partialWordFraction of the clause's words is tried when the full text
	// cannot be found; below partialMinWords the fragment is too generic.
	partialWordFraction = 0.7
	partialMinWords     = 3

	// Middle-portion search requires enough text on both sides of the cut.
	middleMinTextLen = 50
	middleMinSpanLen = 20
)

// Result reports where a clause was found. Found=false is an expected outcome
// recorded in highlight statistics, not an error.
type Result struct {
	Found bool
	Page  int
	Rects []render.Rect
	Stage Stage
}

// Locator runs the page search cascade.
type Locator struct {
	lineThreshold       float64
	aggressiveThreshold float64
	observer            *observability.Observer
}

// New builds a locator. lineThreshold guards the standard fuzzy line stage;
// aggressiveThreshold is the looser bar used when aggressive mode leads the
// cascade (script documents whose extraction is least faithful).
func New(lineThreshold, aggressiveThreshold float64, observer *observability.Observer) *Locator {
	if lineThreshold <= 0 {
		lineThreshold = 0.8
	}
	if aggressiveThreshold <= 0 {
		aggressiveThreshold = 0.7
	}
	return &Locator{
		lineThreshold:       lineThreshold,
		aggressiveThreshold: aggressiveThreshold,
		observer:            observer,
	}
}

// Locate searches every page in order for text and short-circuits on the
// first page with a hit. aggressive leads with fuzzy line matching before
// literal search.
func (l *Locator) Locate(doc render.Document, text string, aggressive bool) Result {
	stop := l.observer.StartTiming("locate", "locate")

	normalized := textnorm.Normalize(text)
	if normalized == "" {
		stop(false, nil)
		return Result{}
	}

	for _, page := range doc.Pages() {
		if rects, stage := l.probePage(page, normalized, aggressive); len(rects) > 0 {
			stop(true, map[string]any{"page": page.Number(), "stage": string(stage)})
			return Result{Found: true, Page: page.Number(), Rects: rects, Stage: stage}
		}
	}

	stop(false, nil)
	return Result{}
}

// probePage runs the cascade against one page.
func (l *Locator) probePage(page render.Page, text string, aggressive bool) ([]render.Rect, Stage) {
	layout := page.Layout()
	folded := render.NormalizedLines(page)

	if aggressive {
		if rects := fuzzyLineSearch(layout, folded, text, l.aggressiveThreshold); len(rects) > 0 {
			return rects, StageAggressiveFuzzy
		}
	}

	if rects := layout.SearchLiteral(text); len(rects) > 0 {
		return rects, StageLiteral
	}

	if clean := cleanForSearch(text); clean != "" {
		if rects := punctStrippedSearch(layout, clean); len(rects) > 0 {
			return rects, StagePunctStripped
		}
	}

	if !aggressive {
		if rects := fuzzyLineSearch(layout, folded, text, l.lineThreshold); len(rects) > 0 {
			return rects, StageLineFuzzy
		}
	}

	if partial := partialWords(text); partial != "" {
		if rects := layout.SearchLiteral(partial); len(rects) > 0 {
			return rects, StagePartialWords
		}
	}

	if middle := middlePortion(text); middle != "" {
		if rects := layout.SearchLiteral(middle); len(rects) > 0 {
			return rects, StageMiddlePortion
		}
	}

	return nil, ""
}

// fuzzyLineSearch matches text against whole lines by word overlap or
// similarity ratio and returns the first qualifying line's box. folded is the
// page's pre-normalized line text, parallel to layout.Lines.
func fuzzyLineSearch(layout *render.Layout, folded []string, text string, threshold float64) []render.Rect {
	targetFold := textnorm.Fold(text)
	targetWords := textnorm.WordSet(text)

	for i, line := range layout.Lines {
		lineFold := folded[i]
		if lineFold == "" {
			continue
		}

		lineWords := textnorm.WordSet(line.Text)
		if len(targetWords) > 0 && len(lineWords) > 0 {
			overlap := 0
			for w := range targetWords {
				if _, ok := lineWords[w]; ok {
					overlap++
				}
			}
			denom := len(targetWords)
			if len(lineWords) < denom {
				denom = len(lineWords)
			}
			if float64(overlap)/float64(denom) >= threshold {
				return []render.Rect{line.Rect}
			}
		}

		if match.Ratio(targetFold, lineFold) >= threshold {
			return []render.Rect{line.Rect}
		}
	}
	return nil
}

// punctStrippedSearch compares punctuation-free forms line by line; a hit
// returns the whole line box since byte offsets no longer correspond.
func punctStrippedSearch(layout *render.Layout, cleanNeedle string) []render.Rect {
	needle := strings.ToLower(cleanNeedle)
	for _, line := range layout.Lines {
		cleanLine := strings.ToLower(cleanForSearch(line.Text))
		if cleanLine != "" && strings.Contains(cleanLine, needle) {
			return []render.Rect{line.Rect}
		}
	}
	return nil
}

// cleanForSearch replaces everything except letters, digits and script runes
// with spaces and collapses the result. Kannada text survives untouched.
func cleanForSearch(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || language.IsKannadaRune(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

// partialWords returns the leading fraction of the clause's words, or empty
// when the clause is too short for a partial probe to be meaningful.
func partialWords(text string) string {
	words := strings.Fields(text)
	if len(words) < partialMinWords {
		return ""
	}
	n := int(float64(len(words)) * partialWordFraction)
	if n < partialMinWords {
		return ""
	}
	return strings.Join(words[:n], " ")
}

// middlePortion returns the middle half of long clauses. Clause edges are
// where extraction damage concentrates; the middle is the most searchable.
func middlePortion(text string) string {
	runes := []rune(text)
	if len(runes) <= middleMinTextLen {
		return ""
	}
	start := len(runes) / 4
	end := 3 * len(runes) / 4
	middle := strings.TrimSpace(string(runes[start:end]))
	if len([]rune(middle)) <= middleMinSpanLen {
		return ""
	}
	return middle
}
