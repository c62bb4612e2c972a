package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	cllog "github.com/msto63/chainlib/foundation/core/log"
	"github.com/msto63/chainlib/pkg/core/config"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("my-service")

	if cfg.ServiceName != "my-service" {
		t.Errorf("ServiceName = %v, want my-service", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %v, want json", cfg.Format)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig("chainsh", config.LogConfig{Level: "debug", Format: "text"})

	if cfg.ServiceName != "chainsh" {
		t.Errorf("ServiceName = %v, want chainsh", cfg.ServiceName)
	}
	if cfg.Level != "debug" || cfg.Format != "text" {
		t.Errorf("FromConfig() = %+v", cfg)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		input    string
		expected cllog.Level
	}{
		{"trace", cllog.LevelTrace},
		{"debug", cllog.LevelDebug},
		{"info", cllog.LevelInfo},
		{"warning", cllog.LevelWarn},
		{"error", cllog.LevelError},
		{"invalid", cllog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			logger := NewLogger(LoggerConfig{Level: tt.input, Output: &bytes.Buffer{}})
			if logger.GetLevel() != tt.expected {
				t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), tt.expected)
			}
		})
	}
}

func TestNewLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName: "test-service",
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
	})

	logger.Debug("hello", cllog.Fields{"key": "value"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output %q does not contain the message", buf.String())
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("mirrored")

	if !strings.Contains(primary.String(), "mirrored") {
		t.Errorf("primary output = %q", primary.String())
	}
	if primary.String() != extra.String() {
		t.Errorf("additional output = %q, want %q", extra.String(), primary.String())
	}
}

func TestInstall(t *testing.T) {
	previous := cllog.GetDefault()
	defer cllog.SetDefault(previous)

	logger := Install(LoggerConfig{Level: "error", Output: &bytes.Buffer{}})
	if cllog.GetDefault() != logger {
		t.Error("Install() did not replace the default logger")
	}
}

func TestNewSimpleLogger(t *testing.T) {
	if NewSimpleLogger("test-service") == nil {
		t.Fatal("NewSimpleLogger() returned nil")
	}
}
