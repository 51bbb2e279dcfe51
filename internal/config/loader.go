package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigFileName is the per-directory configuration file.
const ConfigFileName = ".mcpscan.yml"

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MCPSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("scan.exclude_dirs", defaults.Scan.ExcludeDirs)
	v.SetDefault("scan.ignore", defaults.Scan.Ignore)
	v.SetDefault("scan.extensions", defaults.Scan.Extensions)
	v.SetDefault("output.format", defaults.Output.Format)
	return v
}

func unmarshal(v *viper.Viper, source string) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from an explicit path. Unlike
// LoadFromDir, a missing file is an error here: the user asked for it.
func LoadFromFile(path string) (*Config, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return unmarshal(v, path)
}

// LoadFromDir loads configuration from dir/.mcpscan.yml, falling back to
// the home directory copy, applying defaults for anything unset and
// MCPSCAN_* environment overrides. A missing file is not an error; a
// malformed one is.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			homePath := filepath.Join(home, ConfigFileName)
			if _, statErr := os.Stat(homePath); statErr == nil {
				path = homePath
			}
		}
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		// Absent config means defaults; a present but broken file is an error.
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return unmarshal(v, path)
}
