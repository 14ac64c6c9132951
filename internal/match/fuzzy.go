// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package match reconciles free-form text fragments against a pool of
// candidate sentences. The classifier paraphrases, PDF extraction mangles
// whitespace, and translation rounds sentences off, so equality alone is
// never enough: a deterministic cascade of increasingly tolerant strategies
// decides which candidate (if any) a fragment corresponds to.
package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"lease-lens/internal/textnorm"
)

// Stage identifies which cascade stage produced a match.
type Stage string

const (
	StageExact       Stage = "exact"
	StagePunctFold   Stage = "punct_fold"
	StageContainment Stage = "containment"
	StageSimilarity  Stage = "similarity"
)

// containmentMinLen gates substring containment: the shorter side must be at
// least this long, otherwise trivial fragments ("the Tenant") would match any
// sentence containing them.
const containmentMinLen = 30

// DefaultPoolThreshold accepts similarity matches against the document
// sentence pool.
const DefaultPoolThreshold = 0.6

// DefaultReverseMapThreshold is the stricter bar used when resolving a
// translated sentence back to its original-language counterpart.
const DefaultReverseMapThreshold = 0.75

// Outcome is the explicit result of a cascade run. Found=false is an expected
// state, not an error: unmatched fragments stay in the report flagged as
// match-failed.
type Outcome struct {
	Found     bool
	Candidate string
	Stage     Stage
	Ratio     float64
}

// FindBest runs the cascade over candidates in order and returns the first
// stage that succeeds. threshold applies to the similarity stage only; pass
// DefaultPoolThreshold for fragment-to-pool matching and
// DefaultReverseMapThreshold for reverse-translation lookup. candidates is
// never mutated.
func FindBest(target string, candidates []string, threshold float64) Outcome {
	targetNorm := textnorm.Normalize(target)
	targetFold := strings.ToLower(targetNorm)
	targetClean := textnorm.StripPunct(targetFold)

	// Stage 1: case-insensitive equality after normalization.
	for _, c := range candidates {
		if targetFold == strings.ToLower(textnorm.Normalize(c)) {
			return Outcome{Found: true, Candidate: c, Stage: StageExact, Ratio: 1}
		}
	}

	// Stage 2: equality ignoring punctuation.
	for _, c := range candidates {
		if targetClean == textnorm.StripPunct(strings.ToLower(textnorm.Normalize(c))) {
			return Outcome{Found: true, Candidate: c, Stage: StagePunctFold, Ratio: 1}
		}
	}

	// Stage 3: substring containment either direction, length-gated.
	for _, c := range candidates {
		cFold := strings.ToLower(textnorm.Normalize(c))
		if (strings.Contains(cFold, targetFold) && len(targetNorm) > containmentMinLen) ||
			(strings.Contains(targetFold, cFold) && len(cFold) > containmentMinLen) {
			return Outcome{Found: true, Candidate: c, Stage: StageContainment, Ratio: 1}
		}
	}

	// Stage 4: best similarity ratio across the pool, first-seen wins ties.
	best := Outcome{}
	bestRatio := threshold
	for _, c := range candidates {
		cFold := strings.ToLower(textnorm.Normalize(c))
		r := Ratio(targetFold, cFold)
		if rc := Ratio(targetClean, textnorm.StripPunct(cFold)); rc > r {
			r = rc
		}
		if r > bestRatio {
			bestRatio = r
			best = Outcome{Found: true, Candidate: c, Stage: StageSimilarity, Ratio: r}
		}
	}
	return best
}

// Ratio is the Ratcliff/Obershelp similarity of two strings in [0,1],
// computed character-wise.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
