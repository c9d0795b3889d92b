package logger

import (
	"log"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/xy-planning-network/vouch"
)

const knownFrames = 2

var modulePathRegex = regexp.MustCompile("vouch/.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// NewLogLevel parses val, e.g., "warn" or "WARN", into a LogLevel.
func NewLogLevel(val string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(val)) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

// ColorLogger implements Logger using log, coloring each line by its level.
type ColorLogger struct {
	skip int
	env  vouch.Environment
	dsn  string
	l    *log.Logger
	ll   LogLevel
}

// New constructs a Logger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is DEVELOPMENT.
// The default log level is INFO.
//
// When WithSentryDSN supplies a DSN, New returns a *SentryLogger wrapping the *ColorLogger.
func New(opts ...LoggerOptFn) Logger {
	l := &ColorLogger{
		env: vouch.Development,
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.dsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, l.dsn)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *ColorLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *ColorLogger) Debug(msg string, ctx *LogContext) {
	if l.ll > LogLevelDebug {
		return
	}

	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *ColorLogger) Error(msg string, ctx *LogContext) {
	if l.ll > LogLevelError {
		return
	}

	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
// Unlike log.Fatal, it does not exit.
func (l *ColorLogger) Fatal(msg string, ctx *LogContext) {
	if l.ll > LogLevelFatal {
		return
	}

	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *ColorLogger) Info(msg string, ctx *LogContext) {
	if l.ll > LogLevelInfo {
		return
	}

	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *ColorLogger) Warn(msg string, ctx *LogContext) {
	if l.ll > LogLevelWarn {
		return
	}

	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the ColorLogger.
func (l *ColorLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *ColorLogger) Skip() int { return l.skip }

// log executes printing the log message,
// including any context if available.
func (l *ColorLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	caller := l.caller()
	if ctx != nil && ctx.Caller != "" {
		caller = ctx.Caller
	}

	msg = colorizer("%s %s '%s'", level, caller, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// caller formats the call site of the code calling a ColorLogger method.
func (l *ColorLogger) caller() string {
	// NOTE(dlk): skip the number of frames the ColorLogger has
	// and however many the ColorLogger is configured with
	_, file, line, _ := runtime.Caller(knownFrames + 1 + l.skip)
	return formatCaller(file, line)
}

// immediateFilepath shortens file to something readable in a log line.
//
// e.g.,:
// /home/dlk/vouch/http/req/req.go => vouch/http/req/req.go
// /home/dlk/my-project/internal/internal.go => internal/internal.go
func immediateFilepath(file string) string {
	if match := modulePathRegex.FindString(file); match != "" {
		return match
	}

	dir, base := path.Split(file)
	return path.Base(dir) + "/" + base
}
