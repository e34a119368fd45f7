// Package logger builds the structured loggers used by the driver and
// benchmarks.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Default is the logger used when none is configured.  It writes text
// records at info level to stderr.
var Default = NewText("info", os.Stderr)

// Level maps a level name to a slog level.  Unknown names map to info.
func Level(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New creates a JSON logger writing records at or above level to w.
func New(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level(level)}))
}

// NewText creates a text logger, easier to read on a terminal.
func NewText(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level(level)}))
}

// ForFormat returns New or NewText depending on format ("json" or "text").
func ForFormat(format, level string, w io.Writer) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return New(level, w)
	}
	return NewText(level, w)
}

// SetDefault replaces Default and the slog package default.
func SetDefault(l *slog.Logger) {
	Default = l
	slog.SetDefault(l)
}
