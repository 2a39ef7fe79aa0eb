package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config holds configuration for a ZeroLogger
type Config struct {
	// Level is the minimum log level
	Level Level

	// Console receives human-readable output; nil disables the console
	Console io.Writer

	// NoColor disables ANSI colors on the console
	NoColor bool

	// FilePath optionally adds a log file (appended to)
	FilePath string

	// FileFormat is the file output format (json or text)
	FileFormat Format
}

// ZeroLogger implements Logger on top of zerolog.
// Console and file outputs are combined with io.MultiWriter.
type ZeroLogger struct {
	logger zerolog.Logger
	file   *os.File
}

// New creates a logger from the given configuration
func New(config Config) (*ZeroLogger, error) {
	var writers []io.Writer

	if config.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        config.Console,
			TimeFormat: time.TimeOnly,
			NoColor:    config.NoColor,
		})
	}

	var file *os.File
	if config.FilePath != "" {
		var err error
		file, err = openLogFile(config.FilePath)
		if err != nil {
			return nil, err
		}
		if config.FileFormat == FormatText {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        file,
				TimeFormat: time.RFC3339,
				NoColor:    true,
			})
		} else {
			writers = append(writers, file)
		}
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	logger := zerolog.New(out).Level(toZerolog(config.Level)).With().Timestamp().Logger()
	return &ZeroLogger{logger: logger, file: file}, nil
}

// NewConsoleLogger creates a logger writing human-readable lines to w
func NewConsoleLogger(w io.Writer, level Level) *ZeroLogger {
	// Cannot fail without a file
	l, _ := New(Config{Level: level, Console: w})
	return l
}

// NewWriterLogger creates a logger writing raw JSON lines to w
func NewWriterLogger(w io.Writer, level Level) *ZeroLogger {
	return &ZeroLogger{
		logger: zerolog.New(w).Level(toZerolog(level)).With().Timestamp().Logger(),
	}
}

// NewNullLogger returns a logger that discards everything
func NewNullLogger() *ZeroLogger {
	return &ZeroLogger{logger: zerolog.Nop()}
}

// Debug logs a debug message
func (l *ZeroLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.logger.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Info logs an info message
func (l *ZeroLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.logger.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Warn logs a warning message
func (l *ZeroLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.logger.Warn().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Error logs an error message
func (l *ZeroLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.logger.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

// WithFields returns a logger with additional fields.
// The returned logger shares the underlying outputs; only the parent closes them.
func (l *ZeroLogger) WithFields(fields Fields) Logger {
	return &ZeroLogger{
		logger: l.logger.With().Fields(map[string]interface{}(fields)).Logger(),
	}
}

// Close closes the log file, if any
func (l *ZeroLogger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// openLogFile creates the log file and its parent directories
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
