package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	// Capture log output
	var buf bytes.Buffer

	// Initialize logger with debug enabled and custom writer
	logger := NewLogger(true, &buf)

	// Test debug level (should be visible with debug enabled)
	logger.Debug().Msg("debug message")
	output := buf.String()
	buf.Reset()

	if !strings.Contains(output, "debug message") {
		t.Errorf("Debug log should contain 'debug message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"debug"`) {
		t.Errorf("Debug log should have debug level, got: %s", output)
	}

	// Test info level
	logger.Info().Msg("info message")
	output = buf.String()
	buf.Reset()

	if !strings.Contains(output, "info message") {
		t.Errorf("Info log should contain 'info message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("Info log should have info level, got: %s", output)
	}

	// Test error level
	logger.Error().Msg("error message")
	output = buf.String()
	buf.Reset()

	if !strings.Contains(output, "error message") {
		t.Errorf("Error log should contain 'error message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"error"`) {
		t.Errorf("Error log should have error level, got: %s", output)
	}
}

func TestDebugDisabled(t *testing.T) {
	var buf bytes.Buffer

	// Initialize logger with debug disabled
	logger := NewLogger(false, &buf)

	// Debug messages should be suppressed
	logger.Debug().Msg("hidden message")
	if buf.Len() != 0 {
		t.Errorf("Debug log should be suppressed when debug is disabled, got: %s", buf.String())
	}

	// Info messages should still appear
	logger.Info().Msg("visible message")
	if !strings.Contains(buf.String(), "visible message") {
		t.Errorf("Info log should contain 'visible message', got: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	globalLogger = NewLogger(true, &buf)

	logger := WithComponent("server")
	logger.Info().Msg("component message")

	output := buf.String()
	if !strings.Contains(output, `"component":"server"`) {
		t.Errorf("Log should contain component field, got: %s", output)
	}
	if !strings.Contains(output, "component message") {
		t.Errorf("Log should contain 'component message', got: %s", output)
	}
}
