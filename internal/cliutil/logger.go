package cliutil

import (
	"io"
	"log/slog"
)

// NewLogger builds a slog logger writing to w. format is "json" for a
// JSON handler; anything else gives the text handler.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
