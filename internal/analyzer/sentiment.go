// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import "strings"

// Sentiment is a coarse document tone label.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
)

// sentimentWindow bounds how much leading text sentiment scoring reads.
const sentimentWindow = 512

// Lease-register tone lexicons. The labels feed the favorability score, so
// the vocabulary leans on obligation and consequence terms rather than
// general-purpose sentiment words.
var (
	positiveWords = []string{
		"agree", "mutual", "fair", "reasonable", "consent", "peaceful",
		"quiet enjoyment", "refund", "return", "grace", "renew", "maintain",
	}
	negativeWords = []string{
		"evict", "penalty", "breach", "terminate", "forfeit", "liable",
		"default", "damages", "sue", "seize", "void", "non-refundable",
	}
)

// AnalyzeSentiment scores the leading window of text against the tone
// lexicons. Ties and empty text read as positive: a lease with no consequence
// language is unremarkable, not hostile.
func AnalyzeSentiment(text string) Sentiment {
	window := text
	if len(window) > sentimentWindow {
		window = window[:sentimentWindow]
	}
	folded := strings.ToLower(window)

	pos, neg := 0, 0
	for _, w := range positiveWords {
		pos += strings.Count(folded, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(folded, w)
	}

	total := pos + neg
	if total == 0 {
		return Sentiment{Label: SentimentPositive, Score: 0.5}
	}
	if neg > pos {
		return Sentiment{Label: SentimentNegative, Score: float64(neg) / float64(total)}
	}
	return Sentiment{Label: SentimentPositive, Score: float64(pos) / float64(total)}
}
