package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/vouch"
)

// RequestIDHeader carries the ID of a request, both ways.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under vouch.RequestIDKey
// and echoes it in the response's RequestIDHeader.
//
// A well-formed uuid already set in the request's RequestIDHeader, e.g., by a proxy, is kept.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), vouch.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
