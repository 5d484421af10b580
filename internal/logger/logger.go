package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger wraps zerolog. A nil *Logger discards everything.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger. Output defaults to stderr so stdout only
// carries rendered banners.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.WarnLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: logger}, nil
}

// Nop returns a logger that drops all entries.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// Debug writes a debug-level entry with optional key/value pairs.
func (l *Logger) Debug(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.base.Debug().Fields(kv).Msg(msg)
}

// Info writes an informational entry.
func (l *Logger) Info(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.base.Info().Fields(kv).Msg(msg)
}

// Warn writes a warning entry.
func (l *Logger) Warn(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.base.Warn().Fields(kv).Msg(msg)
}

// Error writes an error entry including the supplied error context.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
