package logger

import (
	"encoding"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/xy-planning-network/vouch"
)

const callerTmpl = "%s:%d"

var (
	_ encoding.TextMarshaler = LogContext{}

	// Headers whose values never reach a log line.
	maskedHeaders = []string{"Authorization", "Cookie", "Proxy-Authorization", "Set-Cookie"}
)

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller is not logged in the text of a LogContext.
	//
	// Caller helps goroutines identify the callers of the process that spawned it.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields or fields not requiring logging.
//
// MarshalText never reads LogContext.Request.Body;
// by the time a request is logged, its body has usually been consumed.
// Query params named "password" and credential headers are masked.
//
// Values in LogContext.Data that cannot be represented in JSON will cause an error to be thrown.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		m["request"] = requestFields(lc.Request)
	}

	return json.Marshal(m)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, "cannot marshal log context: "+err.Error())
	}
	return string(b)
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
//
//	myFunc() { 		<- returns this caller
//		func() {
//			CurrentCaller()
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return formatCaller(file, line)
}

func formatCaller(file string, line int) string {
	return fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
}

func requestFields(r *http.Request) map[string]any {
	fields := map[string]any{"method": r.Method}
	if r.URL != nil {
		u := *r.URL
		q := u.Query()
		vouch.Mask(q, "password")
		u.RawQuery = q.Encode()
		fields["url"] = u.String()
	}

	if len(r.Header) > 0 {
		header := r.Header.Clone()
		for _, key := range maskedHeaders {
			if header.Get(key) != "" {
				header.Set(key, vouch.LogMaskVal)
			}
		}
		fields["header"] = header
	}

	if id, ok := r.Context().Value(vouch.RequestIDKey).(string); ok && id != "" {
		fields["requestId"] = id
	}

	return fields
}
