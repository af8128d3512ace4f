// Package common provides logging, version and banner helpers shared by the
// finplan server and CLI.
package common

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger to provide a consistent interface
type Logger struct {
	zerolog.Logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a logger writing to stderr. Format "json" emits one JSON
// object per line; anything else uses the human-readable console writer.
func NewLogger(level, format string) *Logger {
	var out io.Writer = os.Stderr
	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}
	return NewLoggerWithOutput(level, out)
}

// NewLoggerWithOutput creates a logger writing to a specific output
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	logger := zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger}
}

// NewDefaultLogger creates a logger with default settings
func NewDefaultLogger() *Logger {
	return NewLogger("info", "console")
}

// NewSilentLogger creates a logger that discards all output
func NewSilentLogger() *Logger {
	logger := zerolog.New(io.Discard)
	return &Logger{Logger: logger}
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{Logger: l.Logger.With().Str(key, value).Logger()}
}

// CalcLogger adapts a Logger to the printf-style interface used by the
// calculation engine.
type CalcLogger struct {
	logger *Logger
}

// NewCalcLogger tags every entry with component=calculation.
func NewCalcLogger(l *Logger) CalcLogger {
	return CalcLogger{logger: l.With("component", "calculation")}
}

func (c CalcLogger) Debugf(format string, args ...any) {
	c.logger.Debug().Msg(fmt.Sprintf(format, args...))
}

func (c CalcLogger) Infof(format string, args ...any) {
	c.logger.Info().Msg(fmt.Sprintf(format, args...))
}

func (c CalcLogger) Warnf(format string, args ...any) {
	c.logger.Warn().Msg(fmt.Sprintf(format, args...))
}

func (c CalcLogger) Errorf(format string, args ...any) {
	c.logger.Error().Msg(fmt.Sprintf(format, args...))
}
