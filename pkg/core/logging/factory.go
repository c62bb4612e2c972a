// ============================================================================
// chainlib - Command Grammar Engine
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from host
//              configuration
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	cllog "github.com/msto63/chainlib/foundation/core/log"
	"github.com/msto63/chainlib/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "console" (default: json)
	Format string

	// Primary output (default: stderr, stdout belongs to command output)
	Output io.Writer

	// Additional outputs
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// FromConfig builds a LoggerConfig from the [log] section
func FromConfig(serviceName string, cfg config.LogConfig) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       cfg.Level,
		Format:      cfg.Format,
	}
}

// NewLogger creates a new foundation logger. Unknown levels and formats
// fall back to info and json.
func NewLogger(cfg LoggerConfig) *cllog.Logger {
	level, _ := cllog.ParseLevel(cfg.Level)
	format, _ := cllog.ParseFormat(cfg.Format)

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return cllog.NewWithConfig(cllog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *cllog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// Install creates a logger and makes it the package default, so engines
// built without an explicit logger use it
func Install(cfg LoggerConfig) *cllog.Logger {
	logger := NewLogger(cfg)
	cllog.SetDefault(logger)
	return logger
}
