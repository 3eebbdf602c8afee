package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.WarnLevel},
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" error ", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", zap.String("path", "/tmp/x"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at the default level:\n%s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") || !strings.Contains(out, "/tmp/x") {
		t.Fatalf("expected warn line with field, got:\n%s", out)
	}
}

func TestNewDebugIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("store loaded", zap.Int("projects", 2))
	_ = logger.Sync()

	if !strings.Contains(buf.String(), "DEBUG") || !strings.Contains(buf.String(), `"projects": 2`) {
		t.Fatalf("unexpected debug log: %s", buf.String())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for bad level")
	}
}
