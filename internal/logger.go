package internal

import (
	"log/slog"
	"os"
)

// NewLogger returns a text logger on stderr; verbose enables debug, quiet keeps warnings only
func NewLogger(verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
