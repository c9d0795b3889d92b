package middleware

import (
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/logger"
)

// ReportPanic recovers from panics in the handler, logging them through ls
// and responding 500.
//
// In environments reporting panics, the panic is first sent to Sentry by sentryhttp.
func ReportPanic(env vouch.Environment, ls logger.Logger) Adapter {
	return func(handler http.Handler) http.Handler {
		if env.ReportsPanics() {
			handler = sentryhttp.New(sentryhttp.Options{
				Repanic:         true,
				WaitForDelivery: true,
			}).Handle(handler)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				// NOTE: net/http aborts the response quietly for this one.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				if ls != nil {
					err := fmt.Errorf("%w: recovered from panic: %v", vouch.ErrUnexpected, rec)
					ls.Error(err.Error(), &logger.LogContext{Request: r, Error: err})
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			handler.ServeHTTP(w, r)
		})
	}
}
