// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one classified clause fragment as returned by the model. Text is
// the model's quotation of a document sentence and must still be reconciled
// against the extracted sentence pool.
type Entry struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Classification groups classified fragments by severity tier.
type Classification struct {
	High   []Entry `json:"high_severity"`
	Medium []Entry `json:"medium_severity"`
	Low    []Entry `json:"low_severity"`
}

// Total counts fragments across all tiers.
func (c *Classification) Total() int {
	return len(c.High) + len(c.Medium) + len(c.Low)
}

// ParseError reports a model answer that could not be decoded as a
// classification. Callers treat it as a signal to fall back to keyword
// classification rather than abort.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("llm: parsing classification: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// ParseClassification decodes a model answer into a Classification. The
// answer may be wrapped in markdown code fences, which are stripped first.
func ParseClassification(answer string) (*Classification, error) {
	content := stripCodeFence(answer)

	var parsed Classification
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &parsed, nil
}

// stripCodeFence removes a surrounding ```json ... ``` (or bare ```) block.
func stripCodeFence(s string) string {
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

// ClassifyPrompt builds the severity-classification prompt for document text.
// translated marks documents analyzed after translation so the model knows
// the sentences are not verbatim from the uploaded file.
func ClassifyPrompt(text string, translated bool) string {
	var note string
	if translated {
		note = "\n\nNOTE: This document was originally in Kannada and has been translated to English for analysis."
	}

	return fmt.Sprintf(`You are a legal AI assistant. Analyze this lease agreement and classify ONLY the most important sentences by severity level. For each sentence you classify, explain WHY it belongs to that category.%s

Categories:
- high_severity: Critical risks like eviction threats, large penalties, liability issues, termination clauses, breach consequences
- medium_severity: Important obligations like rent payment terms, maintenance duties, notice requirements, access rights
- low_severity: General information like parties involved, property description, basic definitions

Return your analysis in this EXACT JSON format:
{
  "high_severity": [
    {
      "text": "exact sentence from document",
      "reason": "explanation why this is high severity"
    }
  ],
  "medium_severity": [
    {
      "text": "exact sentence from document",
      "reason": "explanation why this is medium severity"
    }
  ],
  "low_severity": [
    {
      "text": "exact sentence from document",
      "reason": "explanation why this is low severity"
    }
  ]
}

IMPORTANT: Use the exact sentences from the document. Do not paraphrase or modify them.

Document text:
"""%s"""`, note, text)
}

// SummaryInput carries the analysis facts the summary prompt needs.
type SummaryInput struct {
	HighCount      int
	MediumCount    int
	LowCount       int
	Sentiment      string
	SeverityDetail string
	Excerpt        string
	Translated     bool
}

// SummaryPrompt builds the analysis-summary prompt.
func SummaryPrompt(in SummaryInput) string {
	var note string
	if in.Translated {
		note = "\n\nNOTE: This document was originally in Kannada and analyzed after translation to English."
	}

	return fmt.Sprintf(`Create a comprehensive summary of this lease agreement analysis. Include:

1. Overall Assessment: Brief overview of the document's tenant-friendliness
2. Key Findings: Major risks and important obligations
3. Severity Breakdown: Explain the classification of clauses
4. Recommendations: Advice for the tenant%s

Analysis Results:
- High Severity: %d clauses
- Medium Severity: %d clauses
- Low Severity: %d clauses
- Overall Sentiment: %s

Severity Details:%s

Document Excerpt:
"""%s..."""`, note, in.HighCount, in.MediumCount, in.LowCount, in.Sentiment, in.SeverityDetail, in.Excerpt)
}

// TranslateBatchPrompt builds the numbered-list translation prompt for a
// batch of Kannada sentences.
func TranslateBatchPrompt(batch []string) string {
	var b strings.Builder
	for i, sent := range batch {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sent)
	}

	return fmt.Sprintf(`Translate these Kannada sentences to English. Keep the numbering.
Preserve legal terminology. Provide ONLY the translations, one per line with the same numbers.

%s
English translations:`, b.String())
}
