// ============================================================================
// chainlib - Command Grammar Engine
// ============================================================================
//
// Package:     config
// Description: Host configuration for chainsh, loaded from TOML or YAML
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/msto63/chainlib/foundation/chain"
	clerror "github.com/msto63/chainlib/foundation/core/error"
	cllog "github.com/msto63/chainlib/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "CHAINSH_CONFIG"

// Config holds the complete host configuration
type Config struct {
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Shell   ShellConfig   `toml:"shell" yaml:"shell"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// EngineConfig holds the matching and completion settings
type EngineConfig struct {
	CaseSensitive    bool   `toml:"case_sensitive" yaml:"case_sensitive"`
	MatchMode        string `toml:"match_mode" yaml:"match_mode"`
	MaxInputLength   int    `toml:"max_input_length" yaml:"max_input_length"`
	MaxRedirectDepth int    `toml:"max_redirect_depth" yaml:"max_redirect_depth"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// ShellConfig holds interactive shell settings
type ShellConfig struct {
	Prompt       string `toml:"prompt" yaml:"prompt"`
	HistoryFile  string `toml:"history_file" yaml:"history_file"`
	HistoryLimit int    `toml:"history_limit" yaml:"history_limit"`
}

// MetricsConfig holds the Prometheus exporter settings
type MetricsConfig struct {
	Enabled     bool     `toml:"enabled" yaml:"enabled"`
	Namespace   string   `toml:"namespace" yaml:"namespace"`
	Listen      string   `toml:"listen" yaml:"listen"`
	ReadTimeout Duration `toml:"read_timeout" yaml:"read_timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from CHAINSH_CONFIG or the default
// locations. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/chainsh.toml",
			"./chainsh.toml",
			"./chainsh.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/chainsh/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Engine
	if c.Engine.MatchMode == "" {
		c.Engine.MatchMode = chain.MatchPrefix.String()
	}
	if c.Engine.MaxInputLength == 0 {
		c.Engine.MaxInputLength = chain.DefaultMaxInputLength
	}
	if c.Engine.MaxRedirectDepth == 0 {
		c.Engine.MaxRedirectDepth = chain.DefaultMaxRedirectDepth
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}

	// Shell
	if c.Shell.Prompt == "" {
		c.Shell.Prompt = "chain> "
	}
	if c.Shell.HistoryFile == "" {
		c.Shell.HistoryFile = filepath.Join(os.TempDir(), "chainsh.history")
	}
	if c.Shell.HistoryLimit == 0 {
		c.Shell.HistoryLimit = 500
	}

	// Metrics
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "chainsh"
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = "127.0.0.1:9464"
	}
	if c.Metrics.ReadTimeout.Duration == 0 {
		c.Metrics.ReadTimeout.Duration = 5 * time.Second
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Shell.HistoryFile = os.ExpandEnv(c.Shell.HistoryFile)
	c.Metrics.Listen = os.ExpandEnv(c.Metrics.Listen)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if _, err := chain.ParseMatchMode(c.Engine.MatchMode); err != nil {
		return invalid("engine.match_mode", err.Error())
	}
	if c.Engine.MaxInputLength < 0 {
		return invalid("engine.max_input_length", "must not be negative")
	}
	if c.Engine.MaxRedirectDepth < 0 {
		return invalid("engine.max_redirect_depth", "must not be negative")
	}
	if _, err := cllog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", err.Error())
	}
	if _, err := cllog.ParseFormat(c.Log.Format); err != nil {
		return invalid("log.format", err.Error())
	}
	if c.Shell.HistoryLimit < 0 {
		return invalid("shell.history_limit", "must not be negative")
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return invalid("metrics.listen", "required when metrics are enabled")
	}
	return nil
}

func invalid(key, reason string) error {
	return clerror.Newf("invalid configuration value for %s: %s", key, reason).
		WithCode(clerror.CodeInvalidConfig).
		WithDetail("key", key)
}

// EngineOptions converts the engine section into chain.Options. Logger and
// metrics are left for the caller to attach.
func (c *Config) EngineOptions() (chain.Options, error) {
	mode, err := chain.ParseMatchMode(c.Engine.MatchMode)
	if err != nil {
		return chain.Options{}, invalid("engine.match_mode", err.Error())
	}

	comparator := chain.CaseInsensitive
	if c.Engine.CaseSensitive {
		comparator = chain.CaseSensitive
	}

	return chain.Options{
		Comparator:       comparator,
		MatchMode:        mode,
		MaxInputLength:   c.Engine.MaxInputLength,
		MaxRedirectDepth: c.Engine.MaxRedirectDepth,
	}, nil
}
