// Package logging configures the zerolog logger shared by the CLI and web
// front ends.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const fileTimestampLayout = "20060102_150405"

type Options struct {
	Level string
	// Console receives human readable output; nil disables it.
	Console io.Writer
	// Dir receives a spartan_solar_<timestamp>.log file; empty disables it.
	Dir   string
	Clock func() time.Time
}

// Logger owns the optional log file.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Path of the log file, or "" when file logging is off.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func New(opts Options) (*Logger, error) {
	level := zerolog.DebugLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.DateTime})
	}

	var file *os.File
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		name := fmt.Sprintf("spartan_solar_%s.log", opts.Clock().Format(fileTimestampLayout))
		f, err := os.OpenFile(filepath.Join(opts.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{Logger: logger, file: file}, nil
}
