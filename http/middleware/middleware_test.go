package middleware_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/vouch/http/middleware"
	"github.com/xy-planning-network/vouch/logger"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
}

func TestChain(t *testing.T) {
	// Arrange
	var order []string
	adapter := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { order = append(order, "handler") })

	// Act
	middleware.Chain(h, adapter("first"), middleware.NoopAdapter, adapter("second")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

type testLogger struct {
	b   *bytes.Buffer
	ctx *logger.LogContext
}

func newLogger() *testLogger { return &testLogger{b: new(bytes.Buffer)} }

func (tl *testLogger) Debug(msg string, ctx *logger.LogContext) { tl.log(msg, ctx) }
func (tl *testLogger) Error(msg string, ctx *logger.LogContext) { tl.log(msg, ctx) }
func (tl *testLogger) Fatal(msg string, ctx *logger.LogContext) { tl.log(msg, ctx) }
func (tl *testLogger) Info(msg string, ctx *logger.LogContext)  { tl.log(msg, ctx) }
func (tl *testLogger) Warn(msg string, ctx *logger.LogContext)  { tl.log(msg, ctx) }
func (tl *testLogger) LogLevel() logger.LogLevel               { return logger.LogLevelDebug }

func (tl *testLogger) log(msg string, ctx *logger.LogContext) {
	fmt.Fprint(tl.b, msg)
	tl.ctx = ctx
}
