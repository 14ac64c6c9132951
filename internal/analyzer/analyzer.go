// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package analyzer orchestrates the lease analysis pipeline: language
// detection, translation, sentence extraction, severity classification and
// the reconciliation of classifier output back onto document sentences.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"lease-lens/internal/config"
	"lease-lens/internal/language"
	"lease-lens/internal/llm"
	"lease-lens/internal/match"
	"lease-lens/internal/observability"
	"lease-lens/internal/sentence"
	"lease-lens/internal/translation"
)

// Severity is a clause risk tier.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Severities lists the tiers in descending risk order.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// Clause is one classified lease clause after reconciliation. Text is the
// document sentence the classifier fragment resolved to; OriginalText keeps
// the fragment as the model quoted it. SourceText carries the Kannada
// original when the document was translated. MatchFailed marks fragments
// that could not be resolved to any extracted sentence.
type Clause struct {
	Text         string `json:"text"`
	OriginalText string `json:"original_text"`
	Reason       string `json:"reason"`
	SourceText   string `json:"source_text,omitempty"`
	MatchFailed  bool   `json:"match_failed,omitempty"`
}

// Result is a completed analysis.
type Result struct {
	Language     language.Language   `json:"language"`
	Sentences    []string            `json:"-"`
	High         []Clause            `json:"high_severity"`
	Medium       []Clause            `json:"medium_severity"`
	Low          []Clause            `json:"low_severity"`
	Sentiment    Sentiment           `json:"sentiment"`
	Entities     []Entity            `json:"entities"`
	Favorability float64             `json:"favorability_score"`
	Summary      string              `json:"summary"`
	Translation  *translation.Result `json:"-"`
	UsedFallback bool                `json:"used_fallback,omitempty"`
}

// Tier returns the clauses of one severity tier.
func (r *Result) Tier(s Severity) []Clause {
	switch s {
	case SeverityHigh:
		return r.High
	case SeverityMedium:
		return r.Medium
	case SeverityLow:
		return r.Low
	}
	return nil
}

func (r *Result) appendClause(s Severity, c Clause) {
	switch s {
	case SeverityHigh:
		r.High = append(r.High, c)
	case SeverityMedium:
		r.Medium = append(r.Medium, c)
	case SeverityLow:
		r.Low = append(r.Low, c)
	}
}

// TotalClauses counts clauses across all tiers.
func (r *Result) TotalClauses() int {
	return len(r.High) + len(r.Medium) + len(r.Low)
}

// LanguageModel is the completion capability the analyzer needs.
type LanguageModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the pipeline.
type Analyzer struct {
	cfg      *config.Config
	client   LanguageModel
	observer *observability.Observer
}

// New builds an analyzer around a language model client.
func New(cfg *config.Config, client LanguageModel, observer *observability.Observer) *Analyzer {
	return &Analyzer{cfg: cfg, client: client, observer: observer}
}

// Analyze runs the full pipeline over raw document text. Translation failure
// aborts the run; classification failure degrades to keyword fallback.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Result, error) {
	stop := a.observer.StartTiming("analyzer", "analyze")

	lang := language.Detect(text)
	result := &Result{Language: lang}

	analysisText := text
	if lang == language.Kannada {
		aligner := translation.NewAligner(a.client, a.cfg.LLM.BatchSize, a.observer)
		trans, err := aligner.Translate(ctx, text)
		if err != nil {
			stop(false, nil)
			return nil, fmt.Errorf("analyzer: translating document: %w", err)
		}
		result.Translation = trans
		analysisText = trans.Translated
	}

	result.Sentences = sentence.Extract(analysisText)
	result.Sentiment = AnalyzeSentiment(analysisText)
	result.Entities = ExtractEntities(analysisText)

	classification, err := a.classify(ctx, analysisText, lang == language.Kannada)
	if err != nil {
		a.observer.Event("analyzer", "classification_fallback", false,
			map[string]any{"error": err.Error()})
		a.fallbackClassify(result)
		result.UsedFallback = true
	} else {
		a.reconcile(classification, result)
	}

	result.Favorability = FavorabilityScore(result)
	result.Summary = a.summarize(ctx, result, analysisText)

	stop(true, map[string]any{
		"language": string(lang),
		"clauses":  result.TotalClauses(),
		"fallback": result.UsedFallback,
	})
	return result, nil
}

func (a *Analyzer) classify(ctx context.Context, text string, translated bool) (*llm.Classification, error) {
	answer, err := a.client.Complete(ctx, llm.ClassifyPrompt(text, translated))
	if err != nil {
		return nil, err
	}
	return llm.ParseClassification(answer)
}

// reconcile resolves every classifier fragment against the extracted sentence
// pool, and for translated documents maps resolved sentences back to their
// Kannada sources.
func (a *Analyzer) reconcile(c *llm.Classification, result *Result) {
	tiers := []struct {
		severity Severity
		entries  []llm.Entry
	}{
		{SeverityHigh, c.High},
		{SeverityMedium, c.Medium},
		{SeverityLow, c.Low},
	}

	for _, tier := range tiers {
		for _, entry := range tier.entries {
			if entry.Text == "" {
				continue
			}
			reason := entry.Reason
			if reason == "" {
				reason = "No explanation provided"
			}

			clause := Clause{OriginalText: entry.Text, Reason: reason}
			outcome := match.FindBest(entry.Text, result.Sentences, a.cfg.Matcher.PoolThreshold)
			if outcome.Found {
				clause.Text = outcome.Candidate
			} else {
				clause.Text = entry.Text
				clause.MatchFailed = true
			}

			if outcome.Found && result.Translation != nil {
				if src, ok := result.Translation.FindSource(clause.Text, a.cfg.Matcher.ReverseMapThreshold); ok {
					clause.SourceText = src
				}
			}

			result.appendClause(tier.severity, clause)
		}
	}
}

// fallbackKeywordLimit caps how many leading sentences keyword classification
// considers when the model is unavailable.
const fallbackKeywordLimit = 10

// fallbackClassify buckets the leading sentences by keyword when the
// classifier is unusable. Sentences without keyword hits land in the low
// tier as general information.
func (a *Analyzer) fallbackClassify(result *Result) {
	sentences := result.Sentences
	if len(sentences) > fallbackKeywordLimit {
		sentences = sentences[:fallbackKeywordLimit]
	}

	for _, s := range sentences {
		switch {
		case containsAnyKeyword(s, a.cfg.Severity.HighKeywords):
			result.High = append(result.High, Clause{
				Text: s, OriginalText: s, Reason: "Contains high-risk keywords",
			})
		case containsAnyKeyword(s, a.cfg.Severity.MediumKeywords):
			result.Medium = append(result.Medium, Clause{
				Text: s, OriginalText: s, Reason: "Contains obligation-related keywords",
			})
		default:
			result.Low = append(result.Low, Clause{
				Text: s, OriginalText: s, Reason: "General information",
			})
		}
	}
}

func containsAnyKeyword(s string, keywords []string) bool {
	folded := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
