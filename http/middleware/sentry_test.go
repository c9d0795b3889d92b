package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/middleware"
)

func TestReportPanic(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	for _, env := range []vouch.Environment{vouch.Development, vouch.Staging} {
		t.Run(env.String(), func(t *testing.T) {
			// Arrange
			l := newLogger()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			require.NotPanics(t, func() {
				middleware.ReportPanic(env, l)(panicky).ServeHTTP(w, r)
			})

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Contains(t, l.b.String(), "recovered from panic: boom")
			require.ErrorIs(t, l.ctx.Error, vouch.ErrUnexpected)
		})
	}

	t.Run("Abort", func(t *testing.T) {
		// Arrange
		aborting := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) })

		// Act + Assert
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			middleware.ReportPanic(vouch.Development, nil)(aborting).ServeHTTP(
				httptest.NewRecorder(),
				httptest.NewRequest(http.MethodGet, "https://example.com", nil),
			)
		})
	})
}
