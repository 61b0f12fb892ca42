// Package logging builds the process logger for the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Formats accepted by [New].
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to w. "text" uses a colorized handler meant
// for terminals; "json" (the default) emits one object per line.
func New(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})), nil
	case FormatJSON, "":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (allowed: text, json)", format)
	}
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (allowed: debug, info, warn, error)", s)
	}
}
