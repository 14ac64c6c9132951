// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import "regexp"

// Entity is a span of interest pulled from the analysis text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

const (
	EntityMoney = "MONEY"
	EntityDate  = "DATE"
)

var (
	// Rupee and dollar amounts in the notations Indian lease documents use.
	moneyPattern = regexp.MustCompile(`(?i)(?:rs\.?|₹|inr|\$)\s*[\d,]+(?:\.\d+)?(?:\s*/-)?`)

	// Numeric dates plus spelled-out month forms.
	datePattern = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|` +
		`\d{1,2}(?:st|nd|rd|th)?\s+(?:day\s+of\s+)?` +
		`(?:january|february|march|april|may|june|july|august|september|october|november|december)` +
		`(?:\s*,?\s*\d{4})?)\b`)
)

// ExtractEntities finds money amounts and dates in text. Offsets are byte
// positions into the analysis text.
func ExtractEntities(text string) []Entity {
	var entities []Entity
	for _, loc := range moneyPattern.FindAllStringIndex(text, -1) {
		entities = append(entities, Entity{
			Text: text[loc[0]:loc[1]], Label: EntityMoney, Start: loc[0], End: loc[1],
		})
	}
	for _, loc := range datePattern.FindAllStringIndex(text, -1) {
		entities = append(entities, Entity{
			Text: text[loc[0]:loc[1]], Label: EntityDate, Start: loc[0], End: loc[1],
		})
	}
	return entities
}
