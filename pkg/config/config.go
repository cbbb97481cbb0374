// Package config collects the tuning knobs of the recognition engines in one
// declarative structure with YAML overrides. The engine never reads files
// itself; callers pass an io.Reader.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Classifier tunes the trained ensemble.
type Classifier struct {
	Trees    int   `yaml:"trees"`
	MaxDepth int   `yaml:"max_depth"`
	Seed     int64 `yaml:"seed"`
}

// Matcher tunes field similarity matching.
type Matcher struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MaxFeatures         int     `yaml:"max_features"`
}

// Profiler tunes dataset profiling.
type Profiler struct {
	RowCap int   `yaml:"row_cap"`
	Seed   int64 `yaml:"seed"`
}

// Quality tunes quality assessment and anomaly detection.
type Quality struct {
	Contamination float64 `yaml:"contamination"`
	Seed          int64   `yaml:"seed"`
}

// Config is the aggregate engine configuration.
type Config struct {
	Classifier Classifier `yaml:"classifier"`
	Matcher    Matcher    `yaml:"matcher"`
	Profiler   Profiler   `yaml:"profiler"`
	Quality    Quality    `yaml:"quality"`
}

// Default returns the documented engine defaults.
func Default() Config {
	return Config{
		Classifier: Classifier{Trees: 100, MaxDepth: 10, Seed: 42},
		Matcher:    Matcher{SimilarityThreshold: 0.7, MaxFeatures: 1000},
		Profiler:   Profiler{RowCap: 10000, Seed: 42},
		Quality:    Quality{Contamination: 0.10, Seed: 42},
	}
}

// Load overlays YAML settings on the defaults and validates the result.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engines cannot honor.
func (c Config) Validate() error {
	if c.Matcher.SimilarityThreshold <= 0 || c.Matcher.SimilarityThreshold > 1 {
		return fmt.Errorf("config: similarity_threshold %v outside (0, 1]", c.Matcher.SimilarityThreshold)
	}
	if c.Matcher.MaxFeatures <= 0 {
		return fmt.Errorf("config: max_features must be positive, got %d", c.Matcher.MaxFeatures)
	}
	if c.Classifier.Trees <= 0 || c.Classifier.MaxDepth <= 0 {
		return fmt.Errorf("config: classifier trees and max_depth must be positive")
	}
	if c.Profiler.RowCap < 0 {
		return fmt.Errorf("config: row_cap must not be negative, got %d", c.Profiler.RowCap)
	}
	if c.Quality.Contamination <= 0 || c.Quality.Contamination >= 1 {
		return fmt.Errorf("config: contamination %v outside (0, 1)", c.Quality.Contamination)
	}
	return nil
}
