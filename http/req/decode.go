package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/vouch"
)

// maxQueryIndex bounds the index of a slice of structs in a query param key, e.g., "items.999.name".
// *schema.Decoder allocates every element up to the index.
const maxQueryIndex = 1000

func newQueryParamDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	dec.MaxSize(maxQueryIndex)

	return dec
}

// translateJSONError converts an error returned by *json.Decoder into a *DecodeError.
// Documents that are not JSON at all are syntax errors;
// JSON that does not fit the target type is a data error.
func translateJSONError(err error) *DecodeError {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, io.EOF):
		return &DecodeError{Kind: JSONSyntaxError, Detail: "EOF while parsing a value", Err: err}

	case errors.Is(err, io.ErrUnexpectedEOF):
		return &DecodeError{Kind: JSONSyntaxError, Detail: "unexpected end of input", Err: err}

	case errors.As(err, &syntaxErr):
		return &DecodeError{
			Kind:   JSONSyntaxError,
			Detail: fmt.Sprintf("%s at offset %d", syntaxErr, syntaxErr.Offset),
			Err:    err,
		}

	case errors.As(err, &typeErr):
		detail := fmt.Sprintf("invalid type: %s, expected %s", typeErr.Value, typeErr.Type)
		if typeErr.Field != "" {
			detail = typeErr.Field + ": " + detail
		}

		return &DecodeError{Kind: JSONDataError, Detail: detail, Err: err}

	default:
		// NOTE: unknown fields and errors from UnmarshalJSON methods land here.
		return &DecodeError{Kind: JSONDataError, Detail: strings.TrimPrefix(err.Error(), "json: "), Err: err}
	}
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some *schema.Decoder errors are issues with calling code;
// some errors are unexpected issues;
// still some are issues with mismatches between a request's query params and the expected shape.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	// NOTE(dlk): In testing the schema package, outside other errors handled above,
	// the package appears to always use MultiError to wrap errors up.
	// This is the "happy path".
	if !errors.As(err, &pkgErrs) {
		// NOTE: e.g., "schema: interface must be a pointer to struct"
		return fmt.Errorf("vouch/http/req: %w: %s", vouch.ErrBadAny, err)
	}

	keys := make([]string, 0, len(pkgErrs))
	for key := range pkgErrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var details []string
	for _, key := range keys {
		switch err := pkgErrs[key].(type) {
		case schema.ConversionError:
			details = append(details, fmt.Sprintf("%s: invalid value, expected %s", err.Key, err.Type))

		case schema.EmptyFieldError:
			details = append(details, fmt.Sprintf("missing field `%s`", err.Key))

		case schema.UnknownKeyError:
			details = append(details, fmt.Sprintf("unknown field `%s`", err.Key))

		default:
			if isIndexLimitError(err) {
				details = append(details, fmt.Sprintf("%s: index exceeds the allowed maximum of %d", key, maxQueryIndex))
				continue
			}

			// NOTE(dlk): This is an unfortunate footgun with struct tags.
			// A field that requires, but that does not have a schema.Converter registered,
			// will not raise an error until a url.Values has the key set for the incorrectly configured field.
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("vouch/http/req: %w: cannot convert values into unsupported type: %s", vouch.ErrNotImplemented, err)
			}

			return fmt.Errorf("vouch/http/req: %w: %s", vouch.ErrUnexpected, err)
		}
	}

	return &DecodeError{Kind: QueryDeserializeError, Detail: strings.Join(details, "; "), Err: err}
}

// isIndexLimitError reports whether err is *schema.Decoder refusing a slice index from a query param key.
func isIndexLimitError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "is larger than the configured maxSize") || strings.Contains(msg, "index exceeds parser limit")
}
