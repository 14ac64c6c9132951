// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package match

import (
	"reflect"
	"testing"
)

var pool = []string{
	"Tenant shall pay rent by the 5th of each month.",
	"Landlord may terminate this lease for breach of any covenant.",
	"The security deposit shall equal two months of rent.",
}

func TestFindBest_ExactCaseInsensitive(t *testing.T) {
	out := FindBest("tenant shall pay rent by the 5th of each month.", pool, DefaultPoolThreshold)
	if !out.Found {
		t.Fatal("expected a match")
	}
	if out.Stage != StageExact {
		t.Errorf("stage = %q, want %q", out.Stage, StageExact)
	}
	if out.Candidate != pool[0] {
		t.Errorf("candidate = %q, want pool[0]", out.Candidate)
	}
}

func TestFindBest_ReturnsPoolElement(t *testing.T) {
	out := FindBest("Landlord may terminate this lease for breach of any covenant", pool, DefaultPoolThreshold)
	if !out.Found {
		t.Fatal("expected a match")
	}
	found := false
	for _, p := range pool {
		if p == out.Candidate {
			found = true
		}
	}
	if !found {
		t.Errorf("candidate %q is not an element of the pool", out.Candidate)
	}
}

func TestFindBest_PunctuationFolded(t *testing.T) {
	out := FindBest("Tenant shall pay rent by the 5th of each month", pool, DefaultPoolThreshold)
	if !out.Found {
		t.Fatal("expected a match despite missing terminal period")
	}
	if out.Candidate != pool[0] {
		t.Errorf("candidate = %q, want pool[0]", out.Candidate)
	}
}

func TestFindBest_ShortFragmentNotContained(t *testing.T) {
	// "the Tenant" is 9 normalized chars: below the containment gate, and far
	// too short for the similarity stage to clear the threshold.
	out := FindBest("the Tenant", pool, DefaultPoolThreshold)
	if out.Found {
		t.Errorf("short fragment must not match, got %q via %q", out.Candidate, out.Stage)
	}
}

func TestFindBest_LongFragmentContained(t *testing.T) {
	out := FindBest("Landlord may terminate this lease for breach", pool, DefaultPoolThreshold)
	if !out.Found {
		t.Fatal("expected containment match")
	}
	if out.Candidate != pool[1] {
		t.Errorf("candidate = %q, want pool[1]", out.Candidate)
	}
}

func TestFindBest_SimilarityParaphrase(t *testing.T) {
	out := FindBest("The security deposit should equal two months rent.", pool, DefaultPoolThreshold)
	if !out.Found {
		t.Fatal("expected similarity match")
	}
	if out.Candidate != pool[2] {
		t.Errorf("candidate = %q, want pool[2]", out.Candidate)
	}
	if out.Ratio <= DefaultPoolThreshold {
		t.Errorf("ratio %.3f should exceed threshold %.2f", out.Ratio, DefaultPoolThreshold)
	}
}

func TestFindBest_NoMatch(t *testing.T) {
	out := FindBest("completely unrelated text about cooking recipes and gardens", pool, DefaultPoolThreshold)
	if out.Found {
		t.Errorf("expected no match, got %q via %q", out.Candidate, out.Stage)
	}
}

func TestFindBest_DoesNotMutatePool(t *testing.T) {
	snapshot := make([]string, len(pool))
	copy(snapshot, pool)
	FindBest("anything at all that is long enough to process", pool, DefaultPoolThreshold)
	if !reflect.DeepEqual(snapshot, pool) {
		t.Error("FindBest mutated the candidate pool")
	}
}

func TestFindBest_EmptyPool(t *testing.T) {
	if out := FindBest("whatever fragment", nil, DefaultPoolThreshold); out.Found {
		t.Error("empty pool must not match")
	}
}

func TestFindBest_HigherThresholdRejects(t *testing.T) {
	target := "The deposit might equal around two months of the rent."
	relaxed := FindBest(target, pool, 0.6)
	strict := FindBest(target, pool, 0.95)
	if relaxed.Found && strict.Found {
		t.Error("raising the threshold should eventually reject borderline matches")
	}
}

func TestRatio_Bounds(t *testing.T) {
	if r := Ratio("abc", "abc"); r != 1 {
		t.Errorf("identical strings ratio = %v, want 1", r)
	}
	if r := Ratio("", "abc"); r != 0 {
		t.Errorf("empty string ratio = %v, want 0", r)
	}
	if r := Ratio("abcd", "wxyz"); r < 0 || r > 1 {
		t.Errorf("ratio out of range: %v", r)
	}
}
