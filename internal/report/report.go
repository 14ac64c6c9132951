// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report renders analysis results for people and for machines.
package report

import (
	"fmt"
	"strings"

	"lease-lens/internal/analyzer"
)

// Report bundles everything one analysis run produced.
type Report struct {
	File       string                  `json:"file"`
	OutputPath string                  `json:"output_path,omitempty"`
	RunID      string                  `json:"run_id,omitempty"`
	Result     *analyzer.Result        `json:"result"`
	Stats      analyzer.HighlightStats `json:"highlight_stats,omitempty"`
}

// Options controls rendering.
type Options struct {
	Verbose bool
	NoColor bool
}

// Formatter renders a report in one output format.
type Formatter interface {
	Format(r *Report, options Options) (string, error)
	Name() string
	Description() string
	FileExtension() string
}

// Registry holds the available formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter under its name.
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	f, ok := r.formatters[name]
	return f, ok
}

// List returns the registered formatter names.
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry carries the built-in formatters.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(NewTextFormatter())
	DefaultRegistry.Register(NewJSONFormatter())
}

// Export renders the report in the named format from the default registry.
func Export(format string, r *Report, options Options) (string, error) {
	f, ok := DefaultRegistry.Get(format)
	if !ok {
		return "", fmt.Errorf("unsupported format %q. Available formats: %s",
			format, strings.Join(DefaultRegistry.List(), ", "))
	}
	return f.Format(r, options)
}
