package extract

import (
	"errors"
	"net/http"
)

// HandleBody adapts h into an http.HandlerFunc receiving the validated JSON body of each request.
// h does not run when the body is rejected.
func HandleBody[T any](ex *Extractor, h func(http.ResponseWriter, *http.Request, Body[T])) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadBody[T](ex, r)
		if err != nil {
			ex.Reject(w, r, err)
			return
		}

		h(w, r, body)
	}
}

// HandleQuery adapts h into an http.HandlerFunc receiving the validated query params of each request.
// h does not run when the query params are rejected.
func HandleQuery[T any](ex *Extractor, h func(http.ResponseWriter, *http.Request, Query[T])) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := ReadQuery[T](ex, r)
		if err != nil {
			ex.Reject(w, r, err)
			return
		}

		h(w, r, query)
	}
}

// HandleBodyAndQuery adapts h into an http.HandlerFunc receiving both payloads of each request.
// Query params are read first; the body is not read when they are rejected.
func HandleBodyAndQuery[B, Q any](
	ex *Extractor,
	h func(http.ResponseWriter, *http.Request, Body[B], Query[Q]),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := ReadQuery[Q](ex, r)
		if err != nil {
			ex.Reject(w, r, err)
			return
		}

		body, err := ReadBody[B](ex, r)
		if err != nil {
			ex.Reject(w, r, err)
			return
		}

		h(w, r, body, query)
	}
}

// Reject responds to r given err returned by ReadBody or ReadQuery.
//
// A Rejection is written as its Response.
// Any other error is logged and responded to with a bare 500.
// A nil err is a no-op.
func (ex *Extractor) Reject(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	var rej Rejection
	if errors.As(err, &rej) {
		// NOTE: a client gone away is the only reason Static fails; nothing is left to tell it.
		_ = ex.responder.Static(w, r, rej.Response())
		return
	}

	ex.responder.Err(w, r, err)
}
