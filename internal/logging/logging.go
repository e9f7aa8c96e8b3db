// Package logging sets up the zerolog logger used across shuttle.
//
// The terminal belongs to Bubble Tea while the program runs, so log output is
// written to a file instead of stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFile is the log file used when none is configured
const DefaultFile = "shuttle.log"

// Init opens (or creates) the log file at path and returns a logger writing to it.
// The returned closer must be called on exit. An empty level means info.
func Init(path, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if path == "" {
		path = DefaultFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, lvl), f, nil
}

// New builds a logger on an arbitrary writer
func New(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
