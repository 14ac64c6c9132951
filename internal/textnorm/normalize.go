// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// quoteStripper removes decorative quote variants that PDF extractors and
// LLM responses disagree on.
var quoteStripper = strings.NewReplacer(
	"\"", "",
	"“", "", // left double quotation mark
	"”", "", // right double quotation mark
	"„", "", // double low-9 quotation mark
)

// Normalize canonicalizes text for comparison: NFC form, runs of whitespace
// collapsed to single spaces, surrounding whitespace trimmed, decorative
// quotes stripped. It is total: any input yields a result.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return quoteStripper.Replace(s)
}

// Fold returns the normalized, lowercased form used for deduplication and
// case-insensitive equality.
func Fold(s string) string {
	return strings.ToLower(Normalize(s))
}

// StripPunct removes everything except letters, digits and spaces. The result
// is not re-collapsed; callers that need canonical spacing should Normalize
// first.
func StripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WordSet splits folded text into a set of words for overlap scoring.
func WordSet(s string) map[string]struct{} {
	words := strings.Fields(Fold(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
