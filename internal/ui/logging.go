package ui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Structured logging keys shared across packages.
const (
	FieldComponent = "component"
	FieldPrefix    = "prefix"
	FieldPath      = "path"
	FieldSource    = "source"
)

// Logger is a slog logger with the printf-style helpers the commands use.
type Logger struct {
	*slog.Logger
}

// NewLogger writes console (text) or JSON lines to stderr. Debug lowers the
// level to include Debugf output.
func NewLogger(debug bool, format string) (*Logger, error) {
	return newLogger(os.Stderr, debug, format)
}

func newLogger(w io.Writer, debug bool, format string) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}

	return &Logger{Logger: slog.New(h)}, nil
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Component tags every line with the component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.With(slog.String(FieldComponent, name))}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(msg(format, args))
}

func (l *Logger) Infof(format string, args ...any) {
	l.Info(msg(format, args))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(msg(format, args))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Error(msg(format, args))
}

func msg(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
