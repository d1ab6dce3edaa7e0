// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the process logger and installs it as the slog default.
//
// Format "json" writes one JSON object per line; anything else writes
// human-readable text with source locations. Level is debug, info, warn or
// error (case-insensitive) and defaults to info.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	isJSON := strings.EqualFold(strings.TrimSpace(format), "json")

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: !isJSON,
	}

	var handler slog.Handler
	if isJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
