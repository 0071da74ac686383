package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"", LogLevelInfo},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	log.Debug("filtered debug")
	log.Info("filtered info")
	log.Warn("kept warn")
	log.Error("kept error")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("levels below warn should be dropped, got %q", out)
	}
	if !strings.Contains(out, "kept warn") || !strings.Contains(out, "kept error") {
		t.Errorf("warn and error should pass, got %q", out)
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "reelsmith"})

	log.Info("seeded %d items", 3)

	if !strings.Contains(buf.String(), "[INFO] reelsmith: seeded 3 items") {
		t.Errorf("unexpected line %q", buf.String())
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "test"})

	log.WithComponent("editor").Info("ready")

	if !strings.Contains(buf.String(), "component=editor") {
		t.Errorf("field missing from %q", buf.String())
	}
}

func TestWithFieldLeavesParentUntouched(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "test"})

	_ = log.WithField("k", "v")
	log.Info("plain")

	if strings.Contains(buf.String(), "k=v") {
		t.Errorf("parent logger gained a field: %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf, Prefix: "test"})

	log.Info("first")
	log.SetLevel(LogLevelDebug)
	log.Info("second")

	out := buf.String()
	if strings.Contains(out, "first") {
		t.Errorf("info should be filtered at error level: %q", out)
	}
	if !strings.Contains(out, "second") {
		t.Errorf("info should pass at debug level: %q", out)
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("dropped")
	NullLogger.WithComponent("x").Info("dropped")
}
