// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter renders structured output for programmatic consumption.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Name() string {
	return "json"
}

func (f *JSONFormatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *JSONFormatter) FileExtension() string {
	return ".json"
}

func (f *JSONFormatter) Format(r *Report, _ Options) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: encoding json: %w", err)
	}
	return string(data), nil
}
