// Package config loads mcpscan configuration from an optional
// .mcpscan.yml in the scanned directory, with environment variable
// overrides.
package config

import (
	"fmt"
	"strings"
)

// Config represents the complete mcpscan configuration.
type Config struct {
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// ScanConfig controls file discovery.
type ScanConfig struct {
	ExcludeDirs []string          `yaml:"exclude_dirs" mapstructure:"exclude_dirs"` // extra directory names to prune
	Ignore      []string          `yaml:"ignore" mapstructure:"ignore"`             // glob patterns to skip
	Extensions  map[string]string `yaml:"extensions" mapstructure:"extensions"`     // extra extension -> language
}

// OutputConfig controls catalog rendering defaults.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "json", "table", or "list"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			ExcludeDirs: []string{},
			Ignore:      []string{},
			Extensions:  map[string]string{},
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// Validate checks the configuration for values the scanner cannot use.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "table", "list":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}

	for _, dir := range c.Scan.ExcludeDirs {
		if dir == "" {
			return fmt.Errorf("scan.exclude_dirs: empty directory name")
		}
	}

	for ext, language := range c.Scan.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("scan.extensions: %q is not a file extension", ext)
		}
		switch strings.ToLower(language) {
		case "python", "typescript", "javascript":
		default:
			return fmt.Errorf("scan.extensions: unknown language %q for %s", language, ext)
		}
	}
	return nil
}
