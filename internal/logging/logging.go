// Package logging builds the diagnostic logger. Logs always go to stderr (or
// the configured writer), never stdout: stdout of "goto" is consumed by the
// shell.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps normal runs quiet apart from warnings.
const DefaultLevel = "warn"

// Config holds logging configuration.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// ParseLevel parses a level name; empty means DefaultLevel.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = DefaultLevel
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return l, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// New creates a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(out), level)
	return zap.New(core).Named("project"), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
