package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// IsJSON reports whether format selects JSON output.
func IsJSON(format string) bool {
	return strings.EqualFold(format, "json")
}

// New creates a configured application logger writing to stderr, so that
// stdout stays free for rendered HTML.
func New(level slog.Level, format string) *slog.Logger {
	return NewWriter(os.Stderr, level, format)
}

// NewWriter creates a logger writing to w. format is "json" or "text"
// (anything else). It standardizes the "error" key to "err".
func NewWriter(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if IsJSON(format) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn (or warning) and error to a slog level.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}
