// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"lease-lens/internal/analyzer"
)

// TextFormatter renders a colored human-readable report.
type TextFormatter struct {
	tierColors map[analyzer.Severity]*color.Color
}

// NewTextFormatter creates the text formatter with the severity palette.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		tierColors: map[analyzer.Severity]*color.Color{
			analyzer.SeverityHigh:   color.New(color.FgRed, color.Bold),
			analyzer.SeverityMedium: color.New(color.FgYellow),
			analyzer.SeverityLow:    color.New(color.FgBlue),
		},
	}
}

func (f *TextFormatter) Name() string {
	return "text"
}

func (f *TextFormatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *TextFormatter) FileExtension() string {
	return ".txt"
}

var tierTitles = map[analyzer.Severity]string{
	analyzer.SeverityHigh:   "HIGH SEVERITY",
	analyzer.SeverityMedium: "MEDIUM SEVERITY",
	analyzer.SeverityLow:    "LOW SEVERITY",
}

func (f *TextFormatter) Format(r *Report, options Options) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder
	header := color.New(color.FgWhite, color.Bold)

	fmt.Fprintf(&b, "%s\n", header.Sprintf("Lease Analysis: %s", r.File))
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))

	res := r.Result
	fmt.Fprintf(&b, "Language:     %s\n", res.Language)
	fmt.Fprintf(&b, "Favorability: %.1f / 10\n", res.Favorability)
	fmt.Fprintf(&b, "Sentiment:    %s\n", res.Sentiment.Label)
	if res.UsedFallback {
		fmt.Fprintf(&b, "Note:         classifier unavailable, keyword fallback used\n")
	}
	b.WriteString("\n")

	for _, sev := range analyzer.Severities {
		clauses := res.Tier(sev)
		if len(clauses) == 0 {
			continue
		}
		tc := f.tierColors[sev]
		fmt.Fprintf(&b, "%s (%d)\n", tc.Sprint(tierTitles[sev]), len(clauses))
		for _, c := range clauses {
			fmt.Fprintf(&b, "  • %s\n", c.Text)
			fmt.Fprintf(&b, "    Reason: %s\n", c.Reason)
			if options.Verbose {
				if c.SourceText != "" {
					fmt.Fprintf(&b, "    Source: %s\n", c.SourceText)
				}
				if c.MatchFailed {
					fmt.Fprintf(&b, "    (not reconciled to a document sentence)\n")
				}
			}
		}
		b.WriteString("\n")
	}

	if len(res.Entities) > 0 && options.Verbose {
		fmt.Fprintf(&b, "Entities\n")
		for _, e := range res.Entities {
			fmt.Fprintf(&b, "  %-6s %s\n", e.Label, e.Text)
		}
		b.WriteString("\n")
	}

	if r.Stats != nil {
		fmt.Fprintf(&b, "Highlighting\n")
		for _, sev := range analyzer.Severities {
			st := r.Stats[sev]
			if st == nil || st.Expected == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %-7s %d/%d highlighted\n", sev, st.Found, st.Expected)
			if options.Verbose {
				for _, missed := range st.Missed {
					fmt.Fprintf(&b, "    missed: %s\n", missed)
				}
			}
		}
		if r.OutputPath != "" {
			fmt.Fprintf(&b, "  output: %s\n", r.OutputPath)
		}
		b.WriteString("\n")
	}

	if res.Summary != "" {
		fmt.Fprintf(&b, "Summary\n%s\n", res.Summary)
	}

	return b.String(), nil
}
