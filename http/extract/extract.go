package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/vouch/http/req"
	"github.com/xy-planning-network/vouch/http/resp"
	"github.com/xy-planning-network/vouch/valid"
)

// An Extractor decodes request payloads and validates them before handing them to a handler.
//
// An Extractor is safe for concurrent use.
// Most applications need a single one.
type Extractor struct {
	parser    *req.Parser
	validator *valid.Validator
	responder *resp.Responder
}

// New constructs an *Extractor, applying default configuration before opts.
func New(opts ...ExtractorOptFn) *Extractor {
	ex := new(Extractor)
	for _, opt := range opts {
		opt(ex)
	}

	if ex.parser == nil {
		ex.parser = req.NewParser()
	}

	if ex.validator == nil {
		ex.validator = valid.New()
	}

	if ex.responder == nil {
		ex.responder = resp.NewResponder()
	}

	return ex
}

// Body is a validated value decoded from a JSON request body.
type Body[T any] struct{ v T }

// NewBody wraps v, e.g., to call a handler directly in tests.
// NewBody does not validate v.
func NewBody[T any](v T) Body[T] { return Body[T]{v: v} }

// Get returns the wrapped value.
func (b Body[T]) Get() T { return b.v }

// Ptr exposes the wrapped value without copying it.
func (b *Body[T]) Ptr() *T { return &b.v }

// MarshalJSON marshals the wrapped value, as if Body were not there.
func (b Body[T]) MarshalJSON() ([]byte, error) { return json.Marshal(b.v) }

// Query is a validated value decoded from the query params of a request.
type Query[T any] struct{ v T }

// NewQuery wraps v, e.g., to call a handler directly in tests.
// NewQuery does not validate v.
func NewQuery[T any](v T) Query[T] { return Query[T]{v: v} }

// Get returns the wrapped value.
func (q Query[T]) Get() T { return q.v }

// Ptr exposes the wrapped value without copying it.
func (q *Query[T]) Ptr() *T { return &q.v }

// ReadBody decodes the JSON body of r into a T and validates it.
//
// ReadBody consumes r.Body.
// A T failing to decode or validate returns a Rejection.
// Any other error is an issue with calling code or with T.
func ReadBody[T any](ex *Extractor, r *http.Request) (Body[T], error) {
	var v T
	if err := ex.parser.DecodeBody(r, &v); err != nil {
		return Body[T]{}, reject(SourceBody, err)
	}

	if err := ex.validator.Validate(&v); err != nil {
		return Body[T]{}, reject(SourceBody, err)
	}

	return NewBody(v), nil
}

// ReadQuery decodes the query params of r into a T and validates it.
//
// ReadQuery does not touch r.Body.
// A T failing to decode or validate returns a Rejection.
// Any other error is an issue with calling code or with T.
func ReadQuery[T any](ex *Extractor, r *http.Request) (Query[T], error) {
	var v T
	if err := ex.parser.DecodeQuery(r.URL.Query(), &v); err != nil {
		return Query[T]{}, reject(SourceQuery, err)
	}

	if err := ex.validator.Validate(&v); err != nil {
		return Query[T]{}, reject(SourceQuery, err)
	}

	return NewQuery(v), nil
}

// reject classifies err: client faults become a Rejection, anything else passes through wrapped.
func reject(src Source, err error) error {
	var decodeErr *req.DecodeError
	if errors.As(err, &decodeErr) {
		return &DecodeRejection{source: src, cause: decodeErr}
	}

	var validErrs *valid.Errors
	if errors.As(err, &validErrs) {
		rej, encErr := newValidationRejection(src, validErrs)
		if encErr != nil {
			return fmt.Errorf("vouch/http/extract: rendering rejected %s: %w", src, encErr)
		}

		return rej
	}

	return fmt.Errorf("vouch/http/extract: reading %s: %w", src, err)
}
