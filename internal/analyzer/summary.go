// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"context"
	"fmt"
	"strings"

	"lease-lens/internal/language"
	"lease-lens/internal/llm"
)

const (
	// summaryExcerptLen bounds the document excerpt sent with the summary
	// prompt; summaryClausesPerTier bounds the clause detail listing.
	summaryExcerptLen     = 1000
	summaryClausesPerTier = 3
	summaryClauseTextLen  = 100
)

// summarize asks the model for a narrative summary and composes a
// deterministic one when the call fails. It never errors: a missing summary
// would block an otherwise complete analysis.
func (a *Analyzer) summarize(ctx context.Context, r *Result, fullText string) string {
	excerpt := fullText
	if len([]rune(excerpt)) > summaryExcerptLen {
		excerpt = string([]rune(excerpt)[:summaryExcerptLen])
	}

	answer, err := a.client.Complete(ctx, llm.SummaryPrompt(llm.SummaryInput{
		HighCount:      len(r.High),
		MediumCount:    len(r.Medium),
		LowCount:       len(r.Low),
		Sentiment:      r.Sentiment.Label,
		SeverityDetail: severityDetail(r),
		Excerpt:        excerpt,
		Translated:     r.Language == language.Kannada,
	}))
	if err != nil || strings.TrimSpace(answer) == "" {
		a.observer.Event("analyzer", "summary_fallback", false, nil)
		return fallbackSummary(r)
	}
	return answer
}

// severityDetail renders the per-tier clause listing embedded in the summary
// prompt.
func severityDetail(r *Result) string {
	titles := map[Severity]string{
		SeverityHigh:   "High Severity",
		SeverityMedium: "Medium Severity",
		SeverityLow:    "Low Severity",
	}

	var b strings.Builder
	for _, sev := range Severities {
		clauses := r.Tier(sev)
		if len(clauses) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d clauses):\n", titles[sev], len(clauses))
		for i, c := range clauses {
			if i == summaryClausesPerTier {
				break
			}
			fmt.Fprintf(&b, "• %s\n  Reason: %s\n", truncateRunes(c.Text, summaryClauseTextLen), c.Reason)
		}
	}
	return b.String()
}

// fallbackSummary composes a summary from the analysis facts alone.
func fallbackSummary(r *Result) string {
	var parts []string

	if r.Language == language.Kannada {
		parts = append(parts,
			"**Language**: This document was originally in Kannada and has been analyzed after translation.")
	}

	parts = append(parts,
		fmt.Sprintf("**Overall Assessment**: This lease agreement has a %s tone overall.",
			strings.ToLower(r.Sentiment.Label)),
		fmt.Sprintf("**Clause Analysis**: Found %d high-severity, %d medium-severity, and %d low-severity clauses.",
			len(r.High), len(r.Medium), len(r.Low)),
	)

	if len(r.High) > 0 {
		parts = append(parts,
			fmt.Sprintf("**Key Concerns**: The %d high-severity clauses may pose significant risks and should be carefully reviewed.",
				len(r.High)))
	}
	if len(r.Medium) > 0 {
		parts = append(parts,
			fmt.Sprintf("**Important Obligations**: The %d medium-severity clauses outline key responsibilities and terms.",
				len(r.Medium)))
	}

	return strings.Join(parts, " ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
