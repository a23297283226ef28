package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// parseLevel maps a LOG_LEVEL string to a slog level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger builds the slog logger. When logDir is non-empty the logger
// writes JSON lines to medcheck.log in that directory in addition to stderr;
// otherwise it writes text to stderr only.
func SetupLogger(logDir string, level string) *slog.Logger {
	lvl := parseLevel(level)

	if logDir == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		Warn("Failed to create log directory, logging to stderr only", "dir", logDir, "error", err)
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	logPath := filepath.Join(logDir, "medcheck.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Warn("Failed to open log file, logging to stderr only", "path", logPath, "error", err)
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	return slog.New(slog.NewJSONHandler(io.MultiWriter(os.Stderr, file), &slog.HandlerOptions{Level: lvl}))
}
