package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Config struct {
	Level  Level  `toml:"level" env:"EXPENSETRACK_LOG_LEVEL"`
	Format Format `toml:"format" env:"EXPENSETRACK_LOG_FORMAT"`
	Output string `toml:"output" env:"EXPENSETRACK_LOG_OUTPUT"`
}

// Logger is a thin wrapper around slog so the rest of the application
// never deals with handler construction.
type Logger struct {
	*slog.Logger
}

func New(config Config) *Logger {
	writer := resolveWriter(config.Output)

	opts := &slog.HandlerOptions{
		Level: resolveLevel(config.Level),
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

func resolveWriter(output string) io.Writer {
	switch output {
	case "stderr":
		return os.Stderr
	case "discard":
		return io.Discard
	case "", "stdout":
		return os.Stdout
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s, falling back to stdout: %s\n", output, err.Error())
			return os.Stdout
		}
		return file
	}
}

func resolveLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
