// Package logger builds the shared *slog.Logger for the daemon and CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Options controls logger construction.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Unknown values
	// fall back to info.
	Level string
	// Format is "json" or "text". Anything else means text.
	Format string
	// Writer receives log output. Defaults to stderr.
	Writer io.Writer
}

// New builds a *slog.Logger from the given options.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: Level(opts.Level)}

	var h slog.Handler
	if opts.Format == "json" {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}

	return slog.New(h)
}

// Level maps a level name to a slog.Level, defaulting to info.
func Level(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
