package common

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_FluentAPI(t *testing.T) {
	logger := NewLogger("error")
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
	logger.Info().Str("key", "value").Msg("test message")
	logger.Warn().Int("count", 42).Msg("warning")
	logger.Debug().Float64("rate", 3.14).Bool("ok", true).Msg("debug")
}

func TestNewLoggerFromConfig_DefaultsLevel(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
	logger.Info().Msg("default config")
}

func TestNewSilentLogger_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	_ = NewLoggerWithOutput("info", &buf)
	buf.Reset()

	silent := NewSilentLogger()
	silent.Info().Str("leak", "yes").Msg("should be discarded")
	silent.Error().Msg("should be discarded")

	if strings.Contains(buf.String(), "should be discarded") {
		t.Errorf("silent logger leaked output: %q", buf.String())
	}
}

func TestWithCorrelationId_ReturnsNewLogger(t *testing.T) {
	logger := NewSilentLogger()
	child := logger.WithCorrelationId("abc-123")
	if child == nil || child == logger {
		t.Fatal("WithCorrelationId should return a distinct logger")
	}
	child.Info().Msg("tagged")
}
