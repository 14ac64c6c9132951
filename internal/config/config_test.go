// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Matcher.PoolThreshold != 0.6 {
		t.Errorf("pool threshold = %v, want 0.6", cfg.Matcher.PoolThreshold)
	}
	if cfg.Matcher.ReverseMapThreshold != 0.75 {
		t.Errorf("reverse map threshold = %v, want 0.75", cfg.Matcher.ReverseMapThreshold)
	}
	if cfg.Locator.LineThreshold != 0.8 || cfg.Locator.AggressiveLineThreshold != 0.7 {
		t.Errorf("locator thresholds = %v/%v, want 0.8/0.7",
			cfg.Locator.LineThreshold, cfg.Locator.AggressiveLineThreshold)
	}
	if cfg.LLM.BatchSize != 5 {
		t.Errorf("batch size = %d, want 5", cfg.LLM.BatchSize)
	}
	if len(cfg.Severity.HighKeywords) == 0 || len(cfg.Severity.MediumKeywords) == 0 {
		t.Error("fallback keyword lists must not be empty")
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.LLM.Model == "" {
		t.Error("defaults should set a model")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
matcher:
  pool_threshold: 0.7
  reverse_map_threshold: 0.9
llm:
  model: custom-model
  batch_size: 3
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Matcher.PoolThreshold != 0.7 {
		t.Errorf("pool threshold = %v, want 0.7", cfg.Matcher.PoolThreshold)
	}
	if cfg.LLM.Model != "custom-model" {
		t.Errorf("model = %q, want custom-model", cfg.LLM.Model)
	}
	if cfg.LLM.BatchSize != 3 {
		t.Errorf("batch size = %d, want 3", cfg.LLM.BatchSize)
	}
	// Untouched values keep defaults.
	if cfg.Locator.LineThreshold != 0.8 {
		t.Errorf("line threshold = %v, want default 0.8", cfg.Locator.LineThreshold)
	}
}

func TestLoad_RejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("matcher:\n  pool_threshold: 1.5\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for out-of-range threshold")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing config file")
	}
	if cfg == nil {
		t.Fatal("Load should still return usable defaults")
	}
}
