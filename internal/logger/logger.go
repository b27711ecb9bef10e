// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
)

var globalLogger *slog.Logger

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// Init initializes the structured logger with defaults.
func Init() {
	InitWithConfig(Config{Level: slog.LevelInfo, Format: "json"})
}

// InitWithConfig initializes the logger with a custom config.
func InitWithConfig(config Config) {
	opts := &slog.HandlerOptions{Level: config.Level}

	var handler slog.Handler
	if config.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func get() *slog.Logger {
	if globalLogger == nil {
		Init()
	}
	return globalLogger
}

// Info logs an info message.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// Fatal logs an error message and exits.
func Fatal(msg string, args ...any) {
	get().Error(msg, args...)
	os.Exit(1)
}
