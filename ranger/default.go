package ranger

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/extract"
	"github.com/xy-planning-network/vouch/http/req"
	"github.com/xy-planning-network/vouch/http/resp"
	"github.com/xy-planning-network/vouch/http/router"
	"github.com/xy-planning-network/vouch/internal/config"
	"github.com/xy-planning-network/vouch/logger"
	"github.com/xy-planning-network/vouch/valid"
)

// Web server defaults
const (
	DefaultServerIdleTimeout  = 120 * time.Second
	DefaultServerWriteTimeout = 10 * time.Second
)

// defaultLogger constructs the logger.Logger for the service,
// reporting to Sentry when a DSN is configured.
func defaultLogger(cfg *config.Config) logger.Logger {
	return logger.New(
		logger.WithEnv(cfg.Env()),
		logger.WithLevel(cfg.Level()),
		logger.WithSentryDSN(cfg.SentryDSN),
	)
}

// defaultExtractor constructs the [*extract.Extractor] handlers read payloads with.
func defaultExtractor(cfg *config.Config, responder *resp.Responder, v *valid.Validator) *extract.Extractor {
	return extract.New(
		extract.WithParser(req.NewParser(req.WithMaxBodyBytes(cfg.MaxBodyBytes))),
		extract.WithResponder(responder),
		extract.WithValidator(v),
	)
}

// defaultRouter constructs a [*router.Router] answering unmatched requests with a JSON 404 or 405.
func defaultRouter(env vouch.Environment, l logger.Logger, responder *resp.Responder) *router.Router {
	route := router.New(env, l)
	route.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = responder.Json(w, r, resp.Code(http.StatusNotFound))
	})
	route.HandleMethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = responder.Json(w, r, resp.Code(http.StatusMethodNotAllowed))
	})

	return route
}

// defaultServer constructs a default [*http.Server].
func defaultServer(cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		IdleTimeout:  DefaultServerIdleTimeout,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: DefaultServerWriteTimeout,
	}
}

func baseContext(ctx context.Context) func(net.Listener) context.Context {
	return func(net.Listener) context.Context { return ctx }
}
