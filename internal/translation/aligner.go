// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package translation converts Kannada lease text to English while keeping a
// sentence-level map between the two. The map is what lets highlights drawn
// from English analysis land on the Kannada text actually printed in the PDF.
package translation

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"lease-lens/internal/language"
	"lease-lens/internal/llm"
	"lease-lens/internal/match"
	"lease-lens/internal/observability"
	"lease-lens/internal/textnorm"
)

// minSentenceLen drops fragments too short to translate or map usefully.
const minSentenceLen = 20

// CompletionClient is the slice of the llm client the aligner needs.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Aligner translates sentence batches and builds the bidirectional map.
type Aligner struct {
	client    CompletionClient
	batchSize int
	observer  *observability.Observer
}

// NewAligner builds an aligner. batchSize sentences go into each translation
// request; small batches keep the numbered-list pairing reliable.
func NewAligner(client CompletionClient, batchSize int, observer *observability.Observer) *Aligner {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Aligner{client: client, batchSize: batchSize, observer: observer}
}

// Result is a completed translation with its sentence-level maps. Forward maps
// source sentences to translations; Reverse is the inverse and drives the
// lookup from analyzed English back to printable Kannada.
// TranslatedSentences keeps the translations in document order: reverse
// lookups walk it so near-duplicate translations always resolve to the same
// source sentence.
type Result struct {
	Original            string
	Translated          string
	Forward             map[string]string
	Reverse             map[string]string
	SourceSentences     []string
	TranslatedSentences []string
	Language            language.Language
}

// numberPrefix strips the "1. " style numbering from translated lines.
var numberPrefix = regexp.MustCompile(`^\d+\.\s*`)

// kannadaTerminators splits on the devanagari danda, periods and newlines.
var kannadaTerminators = regexp.MustCompile(`[।.\n]+`)

// Translate converts Kannada text to English sentence by sentence. Any failed
// API call aborts the whole translation: a partial map would silently drop
// highlights for the untranslated remainder.
func (a *Aligner) Translate(ctx context.Context, text string) (*Result, error) {
	stop := a.observer.StartTiming("translation", "translate")

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		stop(false, nil)
		return nil, fmt.Errorf("translation: no translatable sentences in document")
	}

	result := &Result{
		Original:        text,
		Forward:         make(map[string]string, len(sentences)),
		Reverse:         make(map[string]string, len(sentences)),
		SourceSentences: sentences,
		Language:        language.Kannada,
	}

	for start := 0; start < len(sentences); start += a.batchSize {
		end := start + a.batchSize
		if end > len(sentences) {
			end = len(sentences)
		}
		batch := sentences[start:end]

		answer, err := a.client.Complete(ctx, llm.TranslateBatchPrompt(batch))
		if err != nil {
			stop(false, map[string]any{"batch": start / a.batchSize})
			return nil, fmt.Errorf("translation: batch starting at sentence %d: %w", start, err)
		}

		// Pair answer lines with batch sentences positionally. When the model
		// returns fewer lines than sentences, the unpaired tail is dropped.
		lines := strings.Split(answer, "\n")
		for i, line := range lines {
			if i >= len(batch) {
				break
			}
			line = strings.TrimSpace(numberPrefix.ReplaceAllString(line, ""))
			if line == "" {
				continue
			}
			result.Forward[batch[i]] = line
			result.Reverse[line] = batch[i]
			result.TranslatedSentences = append(result.TranslatedSentences, line)
		}
	}

	result.Translated = strings.Join(result.TranslatedSentences, "\n")
	stop(true, map[string]any{"sentences": len(sentences), "pairs": len(result.Forward)})
	return result, nil
}

// SplitSentences extracts the translatable sentences from Kannada text:
// paragraphs first, then terminator splits, keeping only sentences long
// enough to carry meaning.
func SplitSentences(text string) []string {
	var sentences []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, sent := range kannadaTerminators.Split(para, -1) {
			sent = strings.TrimSpace(sent)
			if len([]rune(sent)) > minSentenceLen {
				sentences = append(sentences, sent)
			}
		}
	}
	return sentences
}

// FindSource resolves a translated English sentence back to its source
// sentence. The cascade mirrors fragment matching but runs against the
// reverse map's keys with a stricter similarity bar (threshold, typically
// 0.75), since a wrong source sentence highlights the wrong part of the page.
func (r *Result) FindSource(englishSentence string, threshold float64) (string, bool) {
	if r == nil || len(r.Reverse) == 0 {
		return "", false
	}
	if threshold <= 0 {
		threshold = match.DefaultReverseMapThreshold
	}

	// Exact key hit.
	if src, ok := r.Reverse[englishSentence]; ok {
		return src, true
	}

	// Candidates are walked in document order so that when several
	// translations qualify the first one always wins, run after run.
	candidates := r.TranslatedSentences
	if len(candidates) == 0 {
		candidates = make([]string, 0, len(r.Reverse))
		for translated := range r.Reverse {
			candidates = append(candidates, translated)
		}
		sort.Strings(candidates)
	}

	englishFold := textnorm.Fold(englishSentence)

	// Normalized equality.
	for _, translated := range candidates {
		if textnorm.Fold(translated) == englishFold {
			return r.Reverse[translated], true
		}
	}

	// The analyzed sentence may be a fragment of a translated chunk.
	englishLower := strings.ToLower(englishSentence)
	for _, translated := range candidates {
		if strings.Contains(strings.ToLower(translated), englishLower) {
			return r.Reverse[translated], true
		}
	}

	// Similarity as last resort. Strictly-better keeps the earliest candidate
	// on equal ratios.
	best := ""
	bestRatio := threshold
	for _, translated := range candidates {
		if ratio := match.Ratio(englishFold, textnorm.Fold(translated)); ratio > bestRatio {
			bestRatio = ratio
			best = r.Reverse[translated]
		}
	}
	if best != "" {
		return best, true
	}
	return "", false
}
