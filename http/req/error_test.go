package req_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/req"
	"github.com/xy-planning-network/vouch/http/resp"
)

func TestDecodeErrorResponse(t *testing.T) {
	tcs := []struct {
		err  *req.DecodeError
		code int
		body string
	}{
		{
			&req.DecodeError{Kind: req.MissingJSONContentType},
			http.StatusUnsupportedMediaType,
			"Expected request with `Content-Type: application/json`",
		},
		{
			&req.DecodeError{Kind: req.JSONSyntaxError, Detail: "oops"},
			http.StatusBadRequest,
			"Failed to parse the request body as JSON: oops",
		},
		{
			&req.DecodeError{Kind: req.JSONDataError, Detail: "oops"},
			http.StatusUnprocessableEntity,
			"Failed to deserialize the JSON body into the target type: oops",
		},
		{
			&req.DecodeError{Kind: req.BodyTooLarge},
			http.StatusRequestEntityTooLarge,
			"Failed to buffer the request body: length limit exceeded",
		},
		{
			&req.DecodeError{Kind: req.BodyReadError, Detail: "oops"},
			http.StatusBadRequest,
			"Failed to buffer the request body: oops",
		},
		{
			&req.DecodeError{Kind: req.QueryDeserializeError, Detail: "oops"},
			http.StatusBadRequest,
			"Failed to deserialize query string: oops",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.err.Kind.String(), func(t *testing.T) {
			// Act
			actual := tc.err.Response()

			// Assert
			require.Equal(t, tc.code, actual.Code)
			require.Equal(t, resp.ContentTypeText, actual.ContentType)
			require.Equal(t, tc.body, string(actual.Body))
			require.Equal(t, actual, tc.err.Response())
		})
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	// Arrange
	cause := errors.New("cause")

	// Act + Assert
	require.ErrorIs(t, &req.DecodeError{Kind: req.BodyReadError}, vouch.ErrBadFormat)
	require.ErrorIs(t, &req.DecodeError{Kind: req.BodyReadError, Err: cause}, vouch.ErrBadFormat)
	require.ErrorIs(t, &req.DecodeError{Kind: req.BodyReadError, Err: cause}, cause)
	require.NotErrorIs(t, &req.DecodeError{Kind: req.BodyReadError}, vouch.ErrNotValid)
}
