package slogx

import (
	"io"
	"log/slog"
)

// NewLogger creates a text logger writing to w, with records below level dropped.
// Repeated keys are replaced with a [DedupeHandler].
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewDedupeHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}

// ParseLevel translates a level name like "debug" or "info-4" to a [slog.Level].
// The defaultVal is returned if name is empty or not a valid level.
func ParseLevel(name string, defaultVal slog.Level) slog.Level {
	if len(name) == 0 {
		return defaultVal
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return defaultVal
	}
	return level
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}
