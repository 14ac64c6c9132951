// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textnorm

import "testing"

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("  Tenant \t shall\n\npay   rent ")
	want := "Tenant shall pay rent"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_StripsDecorativeQuotes(t *testing.T) {
	got := Normalize(`The “Premises” means the "unit".`)
	want := "The Premises means the unit."
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_EmptyAndWhitespaceOnly(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	if got := Normalize("   \n\t "); got != "" {
		t.Errorf("Normalize(whitespace) = %q, want empty", got)
	}
}

func TestFold_CaseInsensitive(t *testing.T) {
	if Fold("Tenant SHALL Pay") != Fold("tenant shall pay") {
		t.Error("Fold should erase case differences")
	}
}

func TestStripPunct(t *testing.T) {
	got := StripPunct("rent, due by the 5th!")
	want := "rent due by the 5th"
	if got != want {
		t.Errorf("StripPunct() = %q, want %q", got, want)
	}
}

func TestStripPunct_PreservesKannada(t *testing.T) {
	in := "ಬಾಡಿಗೆದಾರರು ಬಾಡಿಗೆ ಪಾವತಿಸಬೇಕು."
	got := StripPunct(in)
	want := "ಬಾಡಿಗೆದಾರರು ಬಾಡಿಗೆ ಪಾವತಿಸಬೇಕು"
	if got != want {
		t.Errorf("StripPunct() = %q, want %q", got, want)
	}
}

func TestWordSet(t *testing.T) {
	set := WordSet("The tenant, the Tenant")
	if len(set) != 3 {
		t.Errorf("expected 3 unique words, got %d: %v", len(set), set)
	}
	if _, ok := set["tenant,"]; !ok {
		t.Error("WordSet should keep punctuation attached to words as extracted")
	}
}
