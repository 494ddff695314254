// Package logging builds the structured logger used by the driver and the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options selects where records go.
type Options struct {
	// Writer receives text records. Nil means stderr.
	Writer io.Writer
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// File, if set, also receives every record as JSON lines.
	File string
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
}

// New returns a logger and a function releasing the log file, if any.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	l, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	level.Set(l)

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}

	closer := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
