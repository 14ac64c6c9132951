// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability provides structured operation logging for the
// analysis pipeline. Components time their operations through closures and
// emit one JSON record per operation when debugging is on.
package observability

import (
	"encoding/json"
	"io"
	"time"
)

// Level controls how much the observer records.
type Level int

const (
	LevelOff     Level = 0
	LevelMetrics Level = 1
	LevelDebug   Level = 2
)

// Observer records component operations.
type Observer struct {
	level  Level
	writer io.Writer
	runID  string
}

// NewObserver creates an observer writing to w. A nil w silences output
// regardless of level.
func NewObserver(level Level, w io.Writer) *Observer {
	return &Observer{level: level, writer: w}
}

// WithRunID returns a copy of the observer that stamps records with the
// analysis run identifier.
func (o *Observer) WithRunID(runID string) *Observer {
	if o == nil {
		return nil
	}
	return &Observer{level: o.level, writer: o.writer, runID: runID}
}

// StartTiming returns a completion function to invoke when the operation
// finishes. Safe to call on a nil observer.
func (o *Observer) StartTiming(component, operation string) func(success bool, metadata map[string]any) {
	if o == nil || o.level == LevelOff {
		return func(bool, map[string]any) {}
	}
	start := time.Now()
	return func(success bool, metadata map[string]any) {
		o.log(Record{
			Component:  component,
			Operation:  operation,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// Event records a single operation without timing.
func (o *Observer) Event(component, operation string, success bool, metadata map[string]any) {
	if o == nil || o.level == LevelOff {
		return
	}
	o.log(Record{Component: component, Operation: operation, Success: success, Metadata: metadata})
}

func (o *Observer) log(rec Record) {
	if o.writer == nil || o.level < LevelDebug {
		return
	}
	rec.RunID = o.runID
	rec.Time = time.Now().UTC().Format(time.RFC3339)
	json.NewEncoder(o.writer).Encode(rec)
}

// Record is one logged operation.
type Record struct {
	Time       string         `json:"time"`
	RunID      string         `json:"run_id,omitempty"`
	Component  string         `json:"component"`
	Operation  string         `json:"operation"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
