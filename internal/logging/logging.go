// Package logging builds the process-wide slog logger from the log level and
// output format chosen in configuration.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Output formats accepted by [New].
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel parses DEBUG, INFO, WARN, WARNING or ERROR (case-insensitive).
// Unknown values yield INFO and ok == false.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New returns a logger writing to w at the given level. format is "text" or
// "json"; anything else falls back to text.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
