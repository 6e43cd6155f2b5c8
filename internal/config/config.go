// Package config loads qrscan settings from a YAML file, QRSCAN_ environment
// variables and command-line flags.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ericlevine/qrdecode/charset"
)

// Config is the resolved qrscan configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`

	// Format is the output format: text, json or yaml.
	Format string `mapstructure:"format" yaml:"format"`

	// Parallelism is the number of corner hypotheses decoded at once.
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
	// MaxHypotheses caps the corners tried per image; 0 means no cap.
	MaxHypotheses int `mapstructure:"max_hypotheses" yaml:"max_hypotheses"`
	// CharacterSet is assumed for payloads without an ECI designator.
	CharacterSet string `mapstructure:"charset" yaml:"charset"`
	// Threshold fixes the binarizer black point (1-255); 0 estimates it.
	Threshold int `mapstructure:"threshold" yaml:"threshold"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:    "info",
		Format:      "text",
		Parallelism: 1,
	}
}

var (
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validFormats   = []string{"text", "json", "yaml"}
)

// Validate checks every field for a usable value.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Format, strings.Join(validFormats, ", "))
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if c.MaxHypotheses < 0 {
		return fmt.Errorf("max_hypotheses must not be negative, got %d", c.MaxHypotheses)
	}
	if c.CharacterSet != "" && charset.GetECIByName(c.CharacterSet) == nil {
		return fmt.Errorf("unknown character set: %s", c.CharacterSet)
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold must be between 0 and 255, got %d", c.Threshold)
	}
	return nil
}
