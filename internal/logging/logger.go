// Package logging provides a small logging abstraction so packages are not
// coupled to a specific logging framework. The production implementation is
// backed by logrus.
package logging

import "github.com/sirupsen/logrus"

// Logger is the structured logging interface used throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

var defaultLogger Logger = NewLogrusAdapterFromLogger(logrus.StandardLogger())

// GetLogger returns the process-wide default logger. Packages use this as
// their initial logger until a configured one is injected via SetLogger.
func GetLogger() Logger {
	return defaultLogger
}

// SetAllLogLevels sets the level on the global logrus logger, which the
// default logger and every logger created from it inherit.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
}
