// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// Initialize returns a logger for the given settings. Logs are discarded
// unless debug is set (or GANTRY_DEBUG is true); with debug on they go to
// file, or to stderr when file is empty. The returned closer releases the
// log file and is never nil.
func Initialize(debug bool, file string) (*slog.Logger, io.Closer, error) {
	if v, err := strconv.ParseBool(os.Getenv("GANTRY_DEBUG")); err == nil && v {
		debug = true
	}
	if !debug {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if file == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
