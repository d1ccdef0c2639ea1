// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// TODO: Consider log rotation

var (
	defaultLogger *slog.Logger
	logFileHandle *os.File
)

// Options controls where log records go.
type Options struct {
	// Interactive is true while the REPL or TUI owns the terminal; records
	// then go to the log file only.
	Interactive bool

	// Level is one of debug, info, warn, error. Empty means info.
	Level string
}

// GetLogFilePath determines the path for the application log file based on XDG spec.
func GetLogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	logDir := filepath.Join(stateDir, "password-manager")
	logFile := filepath.Join(logDir, "app.log")
	return logFile, nil
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// openLogFile creates the log directory and opens the log file for appending.
func openLogFile() (*os.File, string, error) {
	logFilePath, err := GetLogFilePath()
	if err != nil {
		return nil, "", err
	}
	logDir := filepath.Dir(logFilePath)
	// Create directory with appropriate permissions (0750: user rwx, group rx, others ---)
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, logFilePath, fmt.Errorf("creating log directory %s: %w", logDir, err)
	}
	// Open file for appending (0640: user rw, group r, others ---)
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, logFilePath, fmt.Errorf("opening log file %s: %w", logFilePath, err)
	}
	return file, logFilePath, nil
}

// InitLogger configures the package logger, replacing any earlier
// configuration. Until it is called records are discarded.
func InitLogger(opts Options) {
	Close()
	level, levelErr := ParseLevel(opts.Level)

	var writers []io.Writer
	file, logFilePath, err := openLogFile()
	if err != nil {
		if !opts.Interactive {
			fmt.Fprintf(os.Stderr, "Error setting up log file: %v. File logging disabled.\n", err)
		}
	} else {
		writers = append(writers, file)
		logFileHandle = file
	}

	if !opts.Interactive {
		writers = append(writers, os.Stderr)
	}

	var finalWriter io.Writer
	switch len(writers) {
	case 0:
		finalWriter = io.Discard
	case 1:
		finalWriter = writers[0]
	default:
		finalWriter = io.MultiWriter(writers...)
	}

	// Stderr only sees warnings and worse for one-shot commands.
	if !opts.Interactive && len(writers) > 1 {
		defaultLogger = slog.New(&splitHandler{
			file:   slog.NewJSONHandler(writers[0], &slog.HandlerOptions{Level: level}),
			stderr: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: max(level, slog.LevelWarn)}),
		})
	} else {
		defaultLogger = slog.New(slog.NewJSONHandler(finalWriter, &slog.HandlerOptions{Level: level}))
	}

	if levelErr != nil {
		Warn("Falling back to info log level.", "error", levelErr)
	}
	if logFilePath != "" {
		Debug("Logging configured.", "file", logFilePath, "interactive", opts.Interactive)
	}
}

// Close releases the log file, if one was opened.
func Close() {
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
	}
}

// SetLogger allows replacing the default logger instance, mostly for tests.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// current returns the configured logger or a discarding one before InitLogger.
func current() *slog.Logger {
	if defaultLogger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return defaultLogger
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}
