package extract

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/xy-planning-network/vouch/http/req"
	"github.com/xy-planning-network/vouch/http/resp"
	"github.com/xy-planning-network/vouch/valid"
)

const contentTypeJSON = "application/json"

// A Source is the part of a request a payload is read from.
type Source int

const (
	SourceBody Source = iota + 1
	SourceQuery
)

func (s Source) String() string {
	switch s {
	case SourceBody:
		return "body"
	case SourceQuery:
		return "query"
	default:
		return "unknown"
	}
}

// A Rejection is a request whose payload was refused.
//
// A Rejection is either a *DecodeRejection or a *ValidationRejection.
type Rejection interface {
	error

	// Response renders the Rejection; the same Rejection always renders the same response.
	Response() resp.Static

	// Source is the part of the request the refused payload was read from.
	Source() Source

	rejection()
}

var (
	_ Rejection = (*DecodeRejection)(nil)
	_ Rejection = (*ValidationRejection)(nil)
)

// A DecodeRejection is a payload that could not be decoded at all.
type DecodeRejection struct {
	source Source
	cause  *req.DecodeError
}

// Cause returns the decoder's own account of the failure.
func (r *DecodeRejection) Cause() *req.DecodeError { return r.cause }

// Response renders exactly what the decoder renders for the same failure.
func (r *DecodeRejection) Response() resp.Static { return r.cause.Response() }

func (r *DecodeRejection) Source() Source { return r.source }

func (r *DecodeRejection) Error() string {
	return "vouch/http/extract: rejected " + r.source.String() + ": " + r.cause.Error()
}

func (r *DecodeRejection) Unwrap() error { return r.cause }

func (*DecodeRejection) rejection() {}

// A ValidationRejection is a decoded payload that broke the rules of its type.
type ValidationRejection struct {
	source Source
	errs   *valid.Errors
	body   []byte
}

// newValidationRejection renders errs once, so Response never has to fail.
func newValidationRejection(src Source, errs *valid.Errors) (*ValidationRejection, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(errs); err != nil {
		return nil, err
	}

	return &ValidationRejection{
		source: src,
		errs:   errs,
		body:   bytes.TrimSuffix(b.Bytes(), []byte("\n")),
	}, nil
}

// Errors returns every violation found.
func (r *ValidationRejection) Errors() *valid.Errors { return r.errs }

// Response renders a 422 whose JSON body is the set of violations.
// Messages are written as they are; "<" is not escaped.
func (r *ValidationRejection) Response() resp.Static {
	return resp.Static{
		Code:        http.StatusUnprocessableEntity,
		ContentType: contentTypeJSON,
		Body:        append([]byte(nil), r.body...),
	}
}

func (r *ValidationRejection) Source() Source { return r.source }

func (r *ValidationRejection) Error() string {
	return "vouch/http/extract: rejected " + r.source.String() + ":\n" + r.errs.Error()
}

func (r *ValidationRejection) Unwrap() error { return r.errs }

func (*ValidationRejection) rejection() {}
