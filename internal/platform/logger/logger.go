package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New returns the process logger. Level comes from GATEWAY_LOG_LEVEL; every
// component receives this logger at construction rather than reaching for a
// global.
func New() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("GATEWAY_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
