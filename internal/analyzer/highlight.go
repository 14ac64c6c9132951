// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"fmt"

	"lease-lens/internal/language"
	"lease-lens/internal/locate"
	"lease-lens/internal/render"
)

// missedClauseLen truncates missed-clause excerpts in statistics.
const missedClauseLen = 100

// TierStats tracks highlight coverage for one severity tier. Found never
// exceeds Expected and Missed holds one excerpt per unfound clause.
type TierStats struct {
	Expected int      `json:"expected"`
	Found    int      `json:"found"`
	Missed   []string `json:"missed"`
}

// HighlightStats is the per-tier coverage of one highlighting run.
type HighlightStats map[Severity]*TierStats

// TotalExpected sums expected clauses across tiers.
func (h HighlightStats) TotalExpected() int {
	n := 0
	for _, s := range h {
		n += s.Expected
	}
	return n
}

// TotalFound sums highlighted clauses across tiers.
func (h HighlightStats) TotalFound() int {
	n := 0
	for _, s := range h {
		n += s.Found
	}
	return n
}

// HighlightDocument locates every classified clause in doc, queues a
// highlight per hit in the tier's color, and writes the result to outputPath.
// Clauses that cannot be found are recorded as missed, never fatal; the
// statistics always cover every clause in the result.
func (a *Analyzer) HighlightDocument(doc render.Document, result *Result, outputPath string) (HighlightStats, error) {
	stop := a.observer.StartTiming("analyzer", "highlight")

	stats := HighlightStats{}
	for _, sev := range Severities {
		stats[sev] = &TierStats{Missed: []string{}}
	}

	colors, err := a.tierColors()
	if err != nil {
		stop(false, nil)
		return stats, err
	}

	locator := locate.New(a.cfg.Locator.LineThreshold, a.cfg.Locator.AggressiveLineThreshold, a.observer)
	isKannada := result.Language == language.Kannada

	for _, sev := range Severities {
		clauses := result.Tier(sev)
		stats[sev].Expected = len(clauses)

		for _, clause := range clauses {
			// Highlight the text the page actually shows: the Kannada
			// source when the analysis ran on a translation.
			text := clause.Text
			if isKannada && clause.SourceText != "" {
				text = clause.SourceText
			}
			if text == "" {
				continue
			}

			if clause.MatchFailed {
				stats[sev].Missed = append(stats[sev].Missed, truncateRunes(text, missedClauseLen))
				continue
			}

			res := locator.Locate(doc, text, isKannada)
			if !res.Found {
				stats[sev].Missed = append(stats[sev].Missed, truncateRunes(text, missedClauseLen))
				continue
			}

			for _, rect := range res.Rects {
				doc.AddHighlight(res.Page, rect, colors[sev])
			}
			stats[sev].Found++
		}
	}

	if err := doc.Save(outputPath); err != nil {
		stop(false, nil)
		return stats, fmt.Errorf("analyzer: saving highlighted document: %w", err)
	}

	stop(true, map[string]any{
		"expected": stats.TotalExpected(),
		"found":    stats.TotalFound(),
	})
	return stats, nil
}

// tierColors parses the configured highlight colors.
func (a *Analyzer) tierColors() (map[Severity]render.Color, error) {
	colors := make(map[Severity]render.Color, len(Severities))
	for _, sev := range Severities {
		hex, ok := a.cfg.Severity.Colors[string(sev)]
		if !ok {
			return nil, fmt.Errorf("analyzer: no highlight color configured for %s severity", sev)
		}
		c, err := render.ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("analyzer: %s severity: %w", sev, err)
		}
		colors[sev] = c
	}
	return colors, nil
}
