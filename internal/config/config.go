// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the application configuration. Every fuzzy-matching
// threshold the pipeline uses lives here rather than being buried in code:
// the values are empirical and deployments tune them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Defaults struct {
		Format    string `yaml:"format"`
		Verbose   bool   `yaml:"verbose"`
		Debug     bool   `yaml:"debug"`
		NoColor   bool   `yaml:"no_color"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"defaults"`

	// Matcher controls fragment-to-sentence reconciliation.
	Matcher struct {
		// PoolThreshold accepts similarity matches against the sentence pool.
		PoolThreshold float64 `yaml:"pool_threshold"`
		// ReverseMapThreshold is the stricter bar for resolving translated
		// sentences back to source-language sentences.
		ReverseMapThreshold float64 `yaml:"reverse_map_threshold"`
	} `yaml:"matcher"`

	// Locator controls on-page highlight search.
	Locator struct {
		LineThreshold           float64 `yaml:"line_threshold"`
		AggressiveLineThreshold float64 `yaml:"aggressive_line_threshold"`
	} `yaml:"locator"`

	// LLM configures the external classifier/translator service.
	LLM struct {
		BaseURL        string `yaml:"base_url"`
		Model          string `yaml:"model"`
		APIKeyEnv      string `yaml:"api_key_env"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		BatchSize      int    `yaml:"batch_size"`
	} `yaml:"llm"`

	// Severity holds the keyword lists for fallback classification and the
	// highlight colors per tier.
	Severity struct {
		HighKeywords   []string          `yaml:"high_keywords"`
		MediumKeywords []string          `yaml:"medium_keywords"`
		Colors         map[string]string `yaml:"colors"`
	} `yaml:"severity"`

	Web struct {
		Port        string `yaml:"port"`
		MaxUploadMB int    `yaml:"max_upload_mb"`
	} `yaml:"web"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Defaults.Format = "text"
	cfg.Defaults.OutputDir = "."

	cfg.Matcher.PoolThreshold = 0.6
	cfg.Matcher.ReverseMapThreshold = 0.75

	cfg.Locator.LineThreshold = 0.8
	cfg.Locator.AggressiveLineThreshold = 0.7

	cfg.LLM.BaseURL = "https://api.mistral.ai/v1"
	cfg.LLM.Model = "mistral-large-latest"
	cfg.LLM.APIKeyEnv = "MISTRAL_API_KEY"
	cfg.LLM.TimeoutSeconds = 120
	cfg.LLM.BatchSize = 5

	cfg.Severity.HighKeywords = []string{
		"eviction", "penalty", "breach", "terminate", "default", "forfeit", "liable",
	}
	cfg.Severity.MediumKeywords = []string{
		"rent", "payment", "maintenance", "repair", "notice", "access", "inspect",
	}
	cfg.Severity.Colors = map[string]string{
		"high":   "#ff3333",
		"medium": "#ffff33",
		"low":    "#3333ff",
	}

	cfg.Web.Port = "8080"
	cfg.Web.MaxUploadMB = 10

	return cfg
}

// Load reads configuration from path, applying file values over defaults.
// An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// FindConfigFile looks for a config file in standard locations and returns
// the first hit, or empty when none exists.
func FindConfigFile() string {
	candidates := []string{".lease-lens.yaml", "lease-lens.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "lease-lens", "config.yaml"),
			filepath.Join(home, ".lease-lens.yaml"),
		)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func (c *Config) validate() error {
	inRange := func(name string, v float64) error {
		if v <= 0 || v > 1 {
			return fmt.Errorf("config: %s must be in (0,1], got %v", name, v)
		}
		return nil
	}
	if err := inRange("matcher.pool_threshold", c.Matcher.PoolThreshold); err != nil {
		return err
	}
	if err := inRange("matcher.reverse_map_threshold", c.Matcher.ReverseMapThreshold); err != nil {
		return err
	}
	if err := inRange("locator.line_threshold", c.Locator.LineThreshold); err != nil {
		return err
	}
	if err := inRange("locator.aggressive_line_threshold", c.Locator.AggressiveLineThreshold); err != nil {
		return err
	}
	if c.LLM.BatchSize <= 0 {
		return fmt.Errorf("config: llm.batch_size must be positive, got %d", c.LLM.BatchSize)
	}
	return nil
}

// APIKey resolves the LLM API key from the configured environment variable.
func (c *Config) APIKey() string {
	return os.Getenv(c.LLM.APIKeyEnv)
}
