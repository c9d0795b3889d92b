package req

import (
	"net/http"

	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/resp"
)

// A DecodeKind classifies why a request payload could not be decoded.
type DecodeKind int

const (
	MissingJSONContentType DecodeKind = iota + 1
	JSONSyntaxError
	JSONDataError
	BodyTooLarge
	BodyReadError
	QueryDeserializeError
)

func (k DecodeKind) String() string {
	switch k {
	case MissingJSONContentType:
		return "MissingJSONContentType"
	case JSONSyntaxError:
		return "JSONSyntaxError"
	case JSONDataError:
		return "JSONDataError"
	case BodyTooLarge:
		return "BodyTooLarge"
	case BodyReadError:
		return "BodyReadError"
	case QueryDeserializeError:
		return "QueryDeserializeError"
	default:
		return "DecodeKind(unknown)"
	}
}

// A DecodeError is a request payload that could not be decoded.
// It is the fault of the client, not of calling code.
type DecodeError struct {
	Kind   DecodeKind
	Detail string
	Err    error
}

// StatusCode is the HTTP status code a DecodeError responds with.
func (e *DecodeError) StatusCode() int {
	switch e.Kind {
	case MissingJSONContentType:
		return http.StatusUnsupportedMediaType
	case JSONDataError:
		return http.StatusUnprocessableEntity
	case BodyTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

// Body is the plain text a DecodeError responds with.
func (e *DecodeError) Body() string {
	switch e.Kind {
	case MissingJSONContentType:
		return "Expected request with `Content-Type: application/json`"
	case JSONSyntaxError:
		return "Failed to parse the request body as JSON: " + e.Detail
	case JSONDataError:
		return "Failed to deserialize the JSON body into the target type: " + e.Detail
	case BodyTooLarge:
		return "Failed to buffer the request body: length limit exceeded"
	case BodyReadError:
		return "Failed to buffer the request body: " + e.Detail
	case QueryDeserializeError:
		return "Failed to deserialize query string: " + e.Detail
	default:
		return http.StatusText(e.StatusCode())
	}
}

func (e *DecodeError) Error() string { return "vouch/http/req: " + e.Kind.String() + ": " + e.Body() }

// Unwrap exposes vouch.ErrBadFormat and, if set, the underlying decoder error.
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{vouch.ErrBadFormat}
	}

	return []error{vouch.ErrBadFormat, e.Err}
}

// Response renders e the same way for every request.
func (e *DecodeError) Response() resp.Static {
	return resp.Static{
		Code:        e.StatusCode(),
		ContentType: resp.ContentTypeText,
		Body:        []byte(e.Body()),
	}
}
