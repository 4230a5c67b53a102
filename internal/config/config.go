// SPDX-License-Identifier: MPL-2.0

// Package config loads ssmtree settings from the per-user config file and
// SSMTREE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	AppName        = "ssmtree"
	ConfigFileName = "config"
	ConfigFileExt  = "toml"
	EnvPrefix      = "SSMTREE"
)

// Config holds the persistent defaults a user can set once instead of
// repeating them as flags.
type Config struct {
	Profile    string `mapstructure:"profile" toml:"profile"`
	Region     string `mapstructure:"region" toml:"region"`
	Output     string `mapstructure:"output" toml:"output"`
	ShowValues bool   `mapstructure:"show_values" toml:"show_values"`
	MaxRetries int    `mapstructure:"max_retries" toml:"max_retries"`
}

// DefaultConfig returns the built-in defaults used when no file or
// environment override is present.
func DefaultConfig() Config {
	return Config{
		Output: "tree",
	}
}

var dirOverride string

// SetDirOverride redirects config discovery to dir. Tests use it to avoid
// touching the real user config.
func SetDirOverride(dir string) {
	dirOverride = dir
}

// Dir returns the platform config directory for ssmtree.
func Dir() string {
	if dirOverride != "" {
		return dirOverride
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
	case "darwin":
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName)
}

// FilePath returns the full path of the config file, whether or not it
// exists.
func FilePath() string {
	return filepath.Join(Dir(), ConfigFileName+"."+ConfigFileExt)
}

// Load reads the config file and environment, layered over the built-in
// defaults. A missing file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("profile", defaults.Profile)
	v.SetDefault("region", defaults.Region)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("show_values", defaults.ShowValues)
	v.SetDefault("max_retries", defaults.MaxRetries)

	v.AddConfigPath(Dir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Output {
	case "tree", "json":
		return nil
	default:
		return fmt.Errorf("invalid output format %q (expected tree or json)", c.Output)
	}
}

// WriteDefault creates the config directory and writes the built-in defaults
// to the config file. It refuses to clobber an existing file.
func WriteDefault() (string, error) {
	path := FilePath()
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("encoding defaults: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}
