package resp

import (
	"net/http"

	"github.com/xy-planning-network/vouch/logger"
)

const (
	ContentTypeJSON = "application/json; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w    http.ResponseWriter
	r    *http.Request
	code int
	data any
}

// A Static is a fully formed response: the same Static always writes the same bytes.
type Static struct {
	Code        int
	ContentType string
	Body        []byte
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), &logger.LogContext{Request: r.r, Error: e})
		}

		r.code = http.StatusInternalServerError
		return nil
	}
}

// Header sets the response header key to val.
func Header(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		r.w.Header().Set(key, val)
		return nil
	}
}
