// Package lumber is the logging layer of petci, it hides zap and logrus behind one contract
package lumber

import (
	"strings"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
)

// LoggingConfig stores the config for the logger.
// logrus has a single level across writers, it uses ConsoleLevel.
type LoggingConfig struct {
	// Instance names the backend, zap or logrus.
	Instance          string
	EnableConsole     bool
	ConsoleJSONFormat bool
	ConsoleLevel      string
	EnableFile        bool
	FileJSONFormat    bool
	FileLevel         string
	FileLocation      string
}

// Fields Type to pass when we want to call WithFields for structured logging
type Fields map[string]interface{}

const (
	// Debug has verbose message
	Debug = "debug"
	// Info is default log level
	Info = "info"
	// Warn is for logging messages about possible issues
	Warn = "warn"
	// Error is for logging errors
	Error = "error"
	// Fatal is for logging fatal messages. The system shutsdown after logging the message.
	Fatal = "fatal"
)

// List of supported loggers.
const (
	InstanceZapLogger int = iota
	InstanceLogrusLogger
)

// InstanceFromName maps a backend name onto its instance, empty means zap.
func InstanceFromName(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "zap":
		return InstanceZapLogger, nil
	case "logrus":
		return InstanceLogrusLogger, nil
	default:
		return 0, errs.ErrInvalidLoggerInstance
	}
}

// Logger is the logging contract every petci package depends on
type Logger interface {
	// Debugf logs a message at level Debug on the standard logger.
	Debugf(format string, args ...interface{})
	// Infof logs a message at level Info on the standard logger.
	Infof(format string, args ...interface{})
	// Warnf logs a message at level Warn on the standard logger.
	Warnf(format string, args ...interface{})
	// Errorf logs a message at level Error on the standard logger.
	Errorf(format string, args ...interface{})
	// Fatalf logs a message at level Fatal on the standard logger then the process will exit with status set to 1.
	Fatalf(format string, args ...interface{})
	// Panicf logs a message at level Panic on the standard logger.
	Panicf(format string, args ...interface{})
	// WithFields returns a logger that tags every entry with keyValues, e.g. the run id or service.
	WithFields(keyValues Fields) Logger
}

// NewLogger returns the logger backend selected by loggerInstance
func NewLogger(config LoggingConfig, verbose bool, loggerInstance int) (Logger, error) {
	switch loggerInstance {
	case InstanceZapLogger:
		logger := newZapLogger(config, verbose)
		return logger, nil

	case InstanceLogrusLogger:
		logger, err := newLogrusLogger(config, verbose)
		if err != nil {
			return nil, err
		}
		return logger, nil

	default:
		return nil, errs.ErrInvalidLoggerInstance
	}
}
