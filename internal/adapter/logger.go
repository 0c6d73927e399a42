package adapter

import (
	"fmt"
	"io"

	m "github.com/mouse-blink/rtrim/internal/model"
	"github.com/sirupsen/logrus"
)

var _ m.Logger = (*LogrusLogger)(nil)

// LogrusLogger adapts a logrus entry to model.Logger.
type LogrusLogger struct {
	log *logrus.Entry
}

// NewLogrusLogger wraps an existing logrus entry.
func NewLogrusLogger(log *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{log: log}
}

// NewLogger builds the CLI logger: text output on out, warnings and above
// unless verbose is set.
func NewLogger(out io.Writer, verbose bool) *LogrusLogger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return NewLogrusLogger(logrus.NewEntry(log))
}

func (s *LogrusLogger) genFields(args ...any) logrus.Fields {
	fields := logrus.Fields{}

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}

		fields[key] = args[i+1]
	}

	return fields
}

// Debug logs at debug level.
func (s *LogrusLogger) Debug(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Debug(msg)
}

// Info logs at info level.
func (s *LogrusLogger) Info(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Info(msg)
}

// Warn logs at warn level.
func (s *LogrusLogger) Warn(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Warn(msg)
}

// Error logs at error level.
func (s *LogrusLogger) Error(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Error(msg)
}

// With returns a logger that always carries the given fields.
func (s *LogrusLogger) With(args ...any) m.Logger {
	return NewLogrusLogger(s.log.WithFields(s.genFields(args...)))
}

// NopLogger discards everything.
type NopLogger struct{}

// Debug does nothing.
func (NopLogger) Debug(string, ...any) {}

// Info does nothing.
func (NopLogger) Info(string, ...any) {}

// Warn does nothing.
func (NopLogger) Warn(string, ...any) {}

// Error does nothing.
func (NopLogger) Error(string, ...any) {}

// With returns the same NopLogger.
func (n NopLogger) With(...any) m.Logger { return n }
