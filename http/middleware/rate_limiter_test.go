package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/middleware"
)

func TestVisitorFetch(t *testing.T) {
	t.Run("Serial", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors()

		// Act
		v1 := vs.Fetch("127.0.0.1")
		time.Sleep(1 * time.Millisecond)
		v2 := vs.Fetch("127.0.0.1")

		// Assert
		require.Equal(t, v1.Limiter, v2.Limiter)
		require.True(t, v1.LastSeen.Before(v2.LastSeen))
		require.Equal(t, 1, vs.Len())
	})

	t.Run("Concurrent", func(t *testing.T) {
		// Arrange
		var wg sync.WaitGroup
		vs := middleware.NewVisitors()
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				// Act
				vs.Fetch("127.0.0.1")
			}()
		}

		wg.Wait()

		// Assert
		require.Equal(t, 1, vs.Len())
	})
}

func TestRateLimit(t *testing.T) {
	// Arrange
	vs := middleware.NewVisitorsWithLimit(1, 2)
	h := middleware.RateLimit(vs)(noopHandler())

	serve := func(ip string) int {
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r = r.Clone(context.WithValue(r.Context(), vouch.IpAddrKey, ip))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	// Act + Assert
	require.Equal(t, http.StatusOK, serve("1.1.1.1"))
	require.Equal(t, http.StatusOK, serve("1.1.1.1"))
	require.Equal(t, http.StatusTooManyRequests, serve("1.1.1.1"))
	require.Equal(t, http.StatusOK, serve("8.8.8.8"))
	require.Equal(t, 2, vs.Len())
}
