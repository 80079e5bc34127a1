// Package logging builds the run logger from the --log and --log-level flags.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Destinations understood by New besides a file path.
const (
	Discard = ""
	Stderr  = "stderr"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a text logger writing to dest: Discard drops everything,
// Stderr writes to stderr, anything else is a file opened for appending.
// The returned closer releases the file and is never nil.
func New(dest, level string, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)
	switch dest {
	case Discard:
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closer, nil
	case Stderr:
		w = stderr
	default:
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closer, nil
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
