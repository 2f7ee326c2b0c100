// Package log configures the process-wide [log/slog] logger.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	envLogLevel  = "CHRONOLOG_LOG_LEVEL"
	envLogFormat = "CHRONOLOG_LOG_FORMAT"
)

var ErrInvalidFormat = errors.New("invalid log format")

// NewWithCurrentConfig creates a [slog.Logger] by using current configuration.
func NewWithCurrentConfig() *slog.Logger {
	h, err := CreateHandler(os.Stderr, os.Getenv(envLogLevel), os.Getenv(envLogFormat))
	if err != nil {
		h, _ = CreateHandler(os.Stderr, os.Getenv(envLogLevel), FormatText)
	}

	return slog.New(h)
}

// CreateHandler creates a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level := GetLevel(logLevel)

	switch strings.ToLower(logFormat) {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case FormatText, "":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, logFormat)
	}
}

func GetLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// SetLogFormat sets a log/slog format.
func SetLogFormat(logFormat string) error {
	switch strings.ToLower(logFormat) {
	case FormatJSON:
		os.Setenv(envLogFormat, FormatJSON)
	case FormatText, "":
		os.Setenv(envLogFormat, FormatText)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, logFormat)
	}

	slog.SetDefault(NewWithCurrentConfig())

	return nil
}

// SetLogLevel parses and sets a log/slog level.
func SetLogLevel(logLevel string) {
	level := GetLevel(logLevel)
	os.Setenv(envLogLevel, level.String())
	slog.SetLogLoggerLevel(level)
	slog.SetDefault(NewWithCurrentConfig())
}
