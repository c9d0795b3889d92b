package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allowed" style headers on a response for requests from origin.
// The handler including this middleware must also handle the http.MethodOptions method
// and not just the HTTP method it's designed for.
//
// If origin is empty, NoopAdapter returns and this middleware does nothing.
func CORS(origin string) Adapter {
	if origin == "" {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Content-Type",
			RequestIDHeader,
		}),
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
