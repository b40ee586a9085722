// Package logging builds the application's zerolog logger. The terminal
// belongs to the TUI, so logs only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level represents logging level.
type Level = zerolog.Level

// Config holds logger configuration.
type Config struct {
	// File is the log file path. Empty disables logging.
	File  string
	Level string
}

// ParseLevel maps a config level name to a zerolog level. Empty means info.
func ParseLevel(s string) (Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a logger writing to w.
func New(w io.Writer, lvl Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Open creates the logger described by cfg. The returned close func must be
// called on exit; it is never nil.
func Open(cfg Config) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }
	if cfg.File == "" {
		return zerolog.Nop(), noop, nil
	}

	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}

	return New(f, lvl), f.Close, nil
}
