// Package logging builds the process-wide structured logger. All components
// receive a *slog.Logger from bootstrap instead of using the global one.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a JSON logger tagged with the service name. level accepts
// debug, info, warn and error; anything else means info.
func New(out io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler).With(slog.String("service", service))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
