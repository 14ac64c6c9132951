// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"strings"
	"testing"
)

func clauses(n int) []Clause {
	out := make([]Clause, n)
	for i := range out {
		out[i] = Clause{Text: "clause", Reason: "reason"}
	}
	return out
}

func TestFavorabilityScore(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want float64
	}{
		{
			name: "neutral empty document",
			r:    Result{Sentiment: Sentiment{Label: SentimentPositive}},
			want: 7.5, // base + positive swing
		},
		{
			name: "high findings drag the score",
			r: Result{
				High:      clauses(3),
				Sentiment: Sentiment{Label: SentimentNegative},
			},
			want: 5.6, // 7.0 - 0.9 - 0.5
		},
		{
			name: "depth bonus above five clauses",
			r: Result{
				Medium:    clauses(4),
				Low:       clauses(2),
				Sentiment: Sentiment{Label: SentimentPositive},
			},
			want: 7.5, // 7.0 - 0.4 + 0.1 + 0.5 + 0.3
		},
		{
			name: "floor clamp",
			r: Result{
				High:      clauses(30),
				Sentiment: Sentiment{Label: SentimentNegative},
			},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FavorabilityScore(&tt.r); got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	neg := AnalyzeSentiment("The landlord may evict the tenant and the penalty for breach is forfeiture.")
	if neg.Label != SentimentNegative {
		t.Errorf("label = %s, want negative", neg.Label)
	}

	pos := AnalyzeSentiment("Both parties agree to fair and reasonable terms with mutual consent.")
	if pos.Label != SentimentPositive {
		t.Errorf("label = %s, want positive", pos.Label)
	}

	empty := AnalyzeSentiment("")
	if empty.Label != SentimentPositive {
		t.Errorf("empty text label = %s, want positive default", empty.Label)
	}
}

func TestExtractEntities(t *testing.T) {
	text := "Rent of Rs. 12,500 is due on 01/02/2024 and the deposit of ₹50,000 was paid on 15th March 2024."
	entities := ExtractEntities(text)

	var money, dates int
	for _, e := range entities {
		switch e.Label {
		case EntityMoney:
			money++
		case EntityDate:
			dates++
		}
		if text[e.Start:e.End] != e.Text {
			t.Errorf("offsets do not slice back to %q", e.Text)
		}
	}
	if money != 2 {
		t.Errorf("money entities = %d, want 2", money)
	}
	if dates != 2 {
		t.Errorf("date entities = %d, want 2", dates)
	}
}

func TestFallbackSummary(t *testing.T) {
	r := &Result{
		High:      clauses(2),
		Medium:    clauses(1),
		Sentiment: Sentiment{Label: SentimentNegative},
	}
	got := fallbackSummary(r)
	if !strings.Contains(got, "2 high-severity") || !strings.Contains(got, "negative tone") {
		t.Errorf("summary = %q", got)
	}
	if !strings.Contains(got, "Key Concerns") {
		t.Error("high findings should surface concerns")
	}
}
