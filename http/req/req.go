package req

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/vouch"
)

// DefaultMaxBodyBytes is the largest request body a Parser buffers unless configured otherwise.
const DefaultMaxBodyBytes int64 = 2 << 20

// A Parser decodes request payloads into Go values.
//
// A Parser is safe for concurrent use.
type Parser struct {
	queryParamDecoder *schema.Decoder
	maxBodyBytes      int64
	strictBody        bool
}

// NewParser constructs a *Parser, applying default configuration before opts.
func NewParser(opts ...ParserOptFn) *Parser {
	p := &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		maxBodyBytes:      DefaultMaxBodyBytes,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// DecodeBody decodes the JSON document in r.Body into structPtr.
//
// DecodeBody reads r.Body at most once, and no further than the configured limit.
// r.Body cannot be read from again.
//
// A failure caused by the request returns a *DecodeError.
// A null document decoded into a pointer is one: it would leave no value behind.
// Any other error is an issue with calling code, e.g., structPtr is not a pointer,
// and wraps vouch.ErrBadAny.
func (p *Parser) DecodeBody(r *http.Request, structPtr any) error {
	if !hasJSONContentType(r.Header) {
		return &DecodeError{Kind: MissingJSONContentType}
	}

	body := r.Body
	if body == nil {
		body = http.NoBody
	}

	b, err := io.ReadAll(http.MaxBytesReader(nil, body, p.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &DecodeError{Kind: BodyTooLarge, Err: err}
		}

		return &DecodeError{Kind: BodyReadError, Detail: err.Error(), Err: err}
	}

	return p.decodeJSON(b, structPtr)
}

// DecodeQuery decodes params, i.e., the query params of a request, into structPtr.
// Fields are matched by their "schema" struct tag; keys matching no field are ignored.
//
// A failure caused by the request returns a *DecodeError.
// Any other error is an issue with calling code:
// structPtr is not a pointer to a struct (vouch.ErrBadAny),
// a field has a type the decoder cannot fill (vouch.ErrNotImplemented),
// or the decoder misbehaved (vouch.ErrUnexpected).
func (p *Parser) DecodeQuery(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.Decode(structPtr, params); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

func (p *Parser) decodeJSON(b []byte, structPtr any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	if p.strictBody {
		dec.DisallowUnknownFields()
	}

	err := dec.Decode(structPtr)

	var ourFault *json.InvalidUnmarshalError
	if errors.As(err, &ourFault) {
		return fmt.Errorf("vouch/http/req: %w: DecodeBody called with non-pointer: %s", vouch.ErrBadAny, err)
	}

	if err != nil {
		return translateJSONError(err)
	}

	// NOTE: only whitespace may follow the document.
	if _, err := dec.Token(); err != io.EOF {
		return &DecodeError{Kind: JSONSyntaxError, Detail: "trailing characters after the JSON value", Err: err}
	}

	// NOTE: encoding/json sets a pointer target to nil for a null document.
	if target := reflect.ValueOf(structPtr).Elem(); target.Kind() == reflect.Pointer && target.IsNil() {
		return &DecodeError{
			Kind:   JSONDataError,
			Detail: fmt.Sprintf("invalid type: null, expected %s", target.Type().Elem()),
		}
	}

	return nil
}

// hasJSONContentType asserts whether h declares application/json or a +json suffixed media type.
func hasJSONContentType(h http.Header) bool {
	ct := h.Get("Content-Type")
	if ct == "" {
		return false
	}

	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}

	if mt == "application/json" {
		return true
	}

	return strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}
