package logger

import (
	"log"

	"github.com/xy-planning-network/vouch"
)

// A LoggerOptFn is a functional option configuring a ColorLogger when constructing a new one.
type LoggerOptFn func(*ColorLogger)

// WithEnv sets the environment ColorLogger is operating in.
func WithEnv(env vouch.Environment) LoggerOptFn {
	return func(l *ColorLogger) {
		l.env = env
	}
}

// WithLevel sets the log level ColorLogger uses.
// LogLevelUnk is ignored.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *ColorLogger) {
		if level != LogLevelUnk {
			l.ll = level
		}
	}
}

// WithLogger sets the log.Logger ColorLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *ColorLogger) {
		l.l = log
	}
}

// WithSentryDSN reports Error, Warn and Fatal logs carrying an error to the Sentry project at dsn.
func WithSentryDSN(dsn string) LoggerOptFn {
	return func(l *ColorLogger) {
		l.dsn = dsn
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *ColorLogger) {
		l.skip = skip
	}
}
