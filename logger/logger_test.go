package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/vouch/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'\n$`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	tcs := []struct {
		val      string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"info", logger.LogLevelInfo},
		{" Warn ", logger.LogLevelWarn},
		{"warning", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"", logger.LogLevelUnk},
		{"loud", logger.LogLevelUnk},
	}

	for _, tc := range tcs {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}
}

func TestColorLogger(t *testing.T) {
	color.NoColor = true

	tcs := []struct {
		name     string
		level    logger.LogLevel
		log      func(l logger.Logger)
		expected string
	}{
		{"Debug", logger.LogLevelDebug, func(l logger.Logger) { l.Debug("debug", nil) }, "[DEBUG]"},
		{"Info", logger.LogLevelDebug, func(l logger.Logger) { l.Info("info", nil) }, "[INFO]"},
		{"Warn", logger.LogLevelDebug, func(l logger.Logger) { l.Warn("warn", nil) }, "[WARN]"},
		{"Error", logger.LogLevelDebug, func(l logger.Logger) { l.Error("error", nil) }, "[ERROR]"},
		{"Fatal", logger.LogLevelDebug, func(l logger.Logger) { l.Fatal("fatal", nil) }, "[FATAL]"},
		{"Below-Level", logger.LogLevelWarn, func(l logger.Logger) { l.Info("info", nil) }, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.log(l)

			// Assert
			if tc.expected == "" {
				require.Zero(t, b.Len())
				return
			}

			line := b.Bytes()
			require.Equal(t, tc.expected, string(logLevelRegexp.Find(line)))
			require.True(t, fpRegexp.Match(line), string(line))
			match := msgRegexp.FindSubmatch(line)
			require.Len(t, match, 2)
			require.Equal(t, msgOf(tc.expected), string(match[1]))
		})
	}

	t.Run("With-Context", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		l := logger.New(logger.WithLogger(newTestLogger(b)))

		// Act
		l.Error("boom", &logger.LogContext{Error: errors.New("boom")})

		// Assert
		require.Contains(t, b.String(), `'boom' log_context: {"error":"boom"}`)
	})

	t.Run("With-Caller", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		l := logger.New(logger.WithLogger(newTestLogger(b)))

		// Act
		l.Info("hi", &logger.LogContext{Caller: "somewhere.go:1"})

		// Assert
		require.Contains(t, b.String(), "[INFO] somewhere.go:1 'hi'")
	})

	t.Run("Default-Level", func(t *testing.T) {
		require.Equal(t, logger.LogLevelInfo, logger.New().LogLevel())
	})
}

func TestColorLoggerAddSkip(t *testing.T) {
	color.NoColor = true

	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b))).(*logger.ColorLogger)

	// Act
	skipped := l.AddSkip(1)
	logThroughHelper(skipped)

	// Assert
	require.Equal(t, 0, l.Skip())
	require.Equal(t, 1, skipped.Skip())
	require.True(t, fpRegexp.Match(b.Bytes()), b.String())
}

func logThroughHelper(l logger.Logger) { l.Info("helped", nil) }

func msgOf(level string) string {
	return map[string]string{
		"[DEBUG]": "debug",
		"[INFO]":  "info",
		"[WARN]":  "warn",
		"[ERROR]": "error",
		"[FATAL]": "fatal",
	}[level]
}
