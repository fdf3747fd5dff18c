package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger is the global slog logger instance. It falls back to slog's
	// default handler until Init is called.
	Logger = slog.Default()
)

// ParseLevel maps a LOG_LEVEL string to a slog level, defaulting to info.
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

// Init installs a JSON handler on stdout at the given level.
func Init(level string) {
	InitWriter(os.Stdout, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level string) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("Logger initialized", "level", ParseLevel(level).String())
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
