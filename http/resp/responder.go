package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/vouch/logger"
)

const responderFrames = 3

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Json
//	Static
//	Err
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	return d
}

// Err logs the error causing the failure state and responds with a plain-text status.
//
// The error itself never reaches the client.
// Use in exceptional circumstances, i.e., when calling code is at fault.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if nested != nil {
		rr = &Response{code: http.StatusInternalServerError}
		if err != nil {
			doer.logger.Error(fmt.Sprintf("%s: %s", err, nested), &logger.LogContext{Request: r, Error: err})
		}
	}

	if rr.code == 0 {
		rr.code = http.StatusInternalServerError
	}

	http.Error(w, http.StatusText(rr.code), rr.code)
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
//
// The JSON schema will look like this:
//
//	{
//		"data": {}
//	}
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(jsonSchema{D: rr.data}); err != nil {
		err = fmt.Errorf("%w: cannot encode %T: %s", ErrInvalid, rr.data, err)
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Static writes s exactly as it is.
//
// Unlike Json, Static writes even if the request's context is done,
// so a response prepared for a request is never silently dropped.
func (doer *Responder) Static(w http.ResponseWriter, r *http.Request, s Static) error {
	if s.Code == 0 {
		return fmt.Errorf("%w: static response has no status code", ErrMissingData)
	}

	if s.ContentType != "" {
		w.Header().Set("Content-Type", s.ContentType)
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(s.Code)
	if _, err := w.Write(s.Body); err != nil {
		return err
	}

	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{w: w, r: r}

	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(*doer, resp); err != nil {
				return resp, err
			}
		}
	}

	return resp, nil
}
