package slogutil

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// LevelSilent is above every standard level and suppresses all output.
const LevelSilent = slog.Level(100)

// NewLogger creates a new slog.Logger that writes the line format of Handler.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRunLogger is NewLogger with a fresh run id attached to every record,
// so the lines of one invocation can be picked out of a shared log.
func NewRunLogger(w io.Writer, level slog.Level) *slog.Logger {
	return NewLogger(w, level).With("run", uuid.NewString())
}

// NewDiscardLogger creates a logger that discards all output.
func NewDiscardLogger() *slog.Logger {
	return slog.New(NewHandler(io.Discard, &slog.HandlerOptions{Level: LevelSilent}))
}

// LevelFromString converts a string to a slog.Level.
// Supports: debug, info, warn, error, silent (case-insensitive).
// Returns slog.LevelWarn for unrecognized strings.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	case "silent", "off", "none":
		return LevelSilent
	default:
		return slog.LevelWarn
	}
}

// LevelFromVerbosity converts CLI verbosity flags to a slog.Level.
// - quiet=true: LevelSilent
// - verbosity=0: fallback
// - verbosity=1: info
// - verbosity>=2: debug
func LevelFromVerbosity(verbosity int, quiet bool, fallback slog.Level) slog.Level {
	if quiet {
		return LevelSilent
	}
	switch verbosity {
	case 0:
		return fallback
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
