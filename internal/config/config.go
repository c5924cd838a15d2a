// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Scoring
	APIKey         string  `json:"api_key,omitempty"`         // Gemini API key
	SemanticURL    string  `json:"semantic_url,omitempty"`    // Base URL of a similarity scoring service
	SkillWeight    float64 `json:"skill_weight,omitempty"`    // Weight of the skill overlap component (0.0-1.0)
	SemanticWeight float64 `json:"semantic_weight,omitempty"` // Weight of the semantic component (0.0-1.0)

	// Shortlist CLI
	Candidates string `json:"candidates,omitempty"` // Path to a candidates JSON file

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	// Weights are a pair: setting one without the other leaves the blend
	// unbalanced, so require both.
	if (c.SkillWeight == 0) != (c.SemanticWeight == 0) {
		return fmt.Errorf("config error: 'skill_weight' and 'semantic_weight' must be set together")
	}
	if c.SkillWeight < 0 || c.SkillWeight > 1 {
		return fmt.Errorf("config error: 'skill_weight' must be between 0 and 1")
	}
	if c.SemanticWeight < 0 || c.SemanticWeight > 1 {
		return fmt.Errorf("config error: 'semantic_weight' must be between 0 and 1")
	}

	// Validate file paths exist (if specified)
	if c.Candidates != "" {
		if _, err := os.Stat(c.Candidates); os.IsNotExist(err) {
			return fmt.Errorf("config error: candidates file not found: %s", c.Candidates)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SemanticURL == "" {
		result.SemanticURL = defaults.SemanticURL
	}
	if result.Candidates == "" {
		result.Candidates = defaults.Candidates
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8080
		}
	}

	// Float fields: weights travel as a pair
	if result.SkillWeight == 0 && result.SemanticWeight == 0 {
		result.SkillWeight = defaults.SkillWeight
		result.SemanticWeight = defaults.SemanticWeight
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
