// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import "math"

// Favorability weights. The base assumes a lease is serviceable until its
// clauses argue otherwise; high-severity findings cost the most, and a
// thorough analysis (many classified clauses) earns a small trust bonus.
const (
	scoreBase           = 7.0
	scoreHighPenalty    = 0.3
	scoreMediumPenalty  = 0.1
	scoreLowBonus       = 0.05
	scoreSentimentSwing = 0.5
	scoreDepthBonus     = 0.3
	scoreDepthMinimum   = 5
	scoreFloor          = 1.0
	scoreCeiling        = 10.0
)

// FavorabilityScore rates tenant-friendliness on a 1-10 scale.
func FavorabilityScore(r *Result) float64 {
	score := scoreBase
	score -= float64(len(r.High)) * scoreHighPenalty
	score -= float64(len(r.Medium)) * scoreMediumPenalty
	score += float64(len(r.Low)) * scoreLowBonus

	switch r.Sentiment.Label {
	case SentimentPositive:
		score += scoreSentimentSwing
	case SentimentNegative:
		score -= scoreSentimentSwing
	}

	if r.TotalClauses() > scoreDepthMinimum {
		score += scoreDepthBonus
	}

	score = math.Round(score*10) / 10
	return math.Max(scoreFloor, math.Min(scoreCeiling, score))
}
