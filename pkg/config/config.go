package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config holds the budget settings for cost guardrails.
type Config struct {
	MonthlyBudget            float64 `yaml:"monthly_budget" json:"monthly_budget"`
	WarningThresholds        []int   `yaml:"warning_thresholds" json:"warning_thresholds"`
	Enabled                  bool    `yaml:"enabled" json:"enabled"`
	ShowSessionStartWarnings bool    `yaml:"show_session_start_warnings" json:"show_session_start_warnings"`
	ShowStopSummaries        bool    `yaml:"show_stop_summaries" json:"show_stop_summaries"`
}

// fileConfig mirrors Config with optional fields so that keys absent
// from the document fall back to defaults while explicit false values
// still take effect.
type fileConfig struct {
	MonthlyBudget            *float64 `yaml:"monthly_budget"`
	WarningThresholds        []int    `yaml:"warning_thresholds"`
	Enabled                  *bool    `yaml:"enabled"`
	ShowSessionStartWarnings *bool    `yaml:"show_session_start_warnings"`
	ShowStopSummaries        *bool    `yaml:"show_stop_summaries"`
}

// Default returns a Config with documented defaults.
func Default() Config {
	return Config{
		MonthlyBudget:            15.00,
		WarningThresholds:        []int{50, 75, 90, 100, 125},
		Enabled:                  true,
		ShowSessionStartWarnings: true,
		ShowStopSummaries:        true,
	}
}

// Load reads a config document from path. The document may be YAML or
// JSON (YAML is a superset). A missing file yields the defaults with no
// error; a malformed file yields the defaults plus an error the caller
// may log, so a broken config never blocks a session.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if fc.MonthlyBudget != nil {
		cfg.MonthlyBudget = *fc.MonthlyBudget
	}
	if fc.WarningThresholds != nil {
		cfg.WarningThresholds = fc.WarningThresholds
	}
	if fc.Enabled != nil {
		cfg.Enabled = *fc.Enabled
	}
	if fc.ShowSessionStartWarnings != nil {
		cfg.ShowSessionStartWarnings = *fc.ShowSessionStartWarnings
	}
	if fc.ShowStopSummaries != nil {
		cfg.ShowStopSummaries = *fc.ShowStopSummaries
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize sorts thresholds ascending, dropping duplicates and
// non-positive values. The source document is not trusted to be sorted.
func (c *Config) Normalize() {
	seen := make(map[int]bool, len(c.WarningThresholds))
	cleaned := make([]int, 0, len(c.WarningThresholds))
	for _, t := range c.WarningThresholds {
		if t <= 0 || seen[t] {
			continue
		}
		seen[t] = true
		cleaned = append(cleaned, t)
	}
	sort.Ints(cleaned)
	c.WarningThresholds = cleaned
}
