// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package language detects the source language of lease text. Classification
// prompts are authored in English, so anything non-English must be translated
// before analysis.
package language

// Language identifies a supported document language.
type Language string

const (
	English Language = "english"
	Kannada Language = "kannada"
)

// Kannada Unicode block.
const (
	kannadaLo = 0x0C80
	kannadaHi = 0x0CFF
)

// kannadaRatioThreshold is the fraction of runes that must fall inside the
// Kannada block before the document is treated as Kannada. Lease documents
// routinely mix in English numerals and party names, so a low bar is enough.
const kannadaRatioThreshold = 0.10

// Detect reports the dominant language of text. Empty text is English: the
// downstream pipeline treats English as the no-translation default.
func Detect(text string) Language {
	if text == "" {
		return English
	}

	total, kannada := 0, 0
	for _, r := range text {
		total++
		if r >= kannadaLo && r <= kannadaHi {
			kannada++
		}
	}

	if float64(kannada) > float64(total)*kannadaRatioThreshold {
		return Kannada
	}
	return English
}

// IsKannadaRune reports whether r belongs to the Kannada Unicode block.
// The highlight locator uses this to preserve script ranges when stripping
// punctuation for literal PDF search.
func IsKannadaRune(r rune) bool {
	return r >= kannadaLo && r <= kannadaHi
}
