package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/extract"
	"github.com/xy-planning-network/vouch/http/middleware"
	"github.com/xy-planning-network/vouch/http/resp"
	"github.com/xy-planning-network/vouch/http/router"
	"github.com/xy-planning-network/vouch/internal/config"
	"github.com/xy-planning-network/vouch/logger"
	"github.com/xy-planning-network/vouch/valid"
)

// ShutdownTimeout bounds how long Shutdown waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a vouch service to one another.
type Ranger struct {
	*resp.Responder
	Router *router.Router

	cancel   context.CancelFunc
	cfg      *config.Config
	ctx      context.Context
	env      vouch.Environment
	ex       *extract.Extractor
	l        logger.Logger
	srv      *http.Server
	validate *valid.Validator
	visitors *middleware.Visitors
}

// New constructs a Ranger from cfg and the provided options.
// Options run first; anything they leave unset is filled in from cfg.
func New(cfg *config.Config, opts ...RangerOption) (*Ranger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", vouch.ErrBadConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Ranger{cfg: cfg, env: cfg.Env()}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", vouch.ErrBadConfig, err)
		}
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	// NOTE: requests derive from the parent so cancelling Guide does not cut short those in flight.
	base := r.ctx
	r.ctx, r.cancel = context.WithCancel(base)

	if r.l == nil {
		r.l = defaultLogger(cfg)
	}

	if r.validate == nil {
		r.validate = valid.New()
	}

	if r.visitors == nil {
		r.visitors = middleware.NewVisitors()
	}

	r.Responder = resp.NewResponder(resp.WithLogger(r.l))
	r.ex = defaultExtractor(cfg, r.Responder, r.validate)
	r.Router = defaultRouter(r.env, r.l, r.Responder)

	if r.srv == nil {
		r.srv = defaultServer(cfg)
	}
	r.srv.BaseContext = baseContext(base)
	r.srv.Handler = r.Handler()

	return r, nil
}

// Cancel exposes the context.CancelFunc stopping Guide.
func (r *Ranger) Cancel() context.CancelFunc { return r.cancel }

func (r *Ranger) EmitConfig() *config.Config         { return r.cfg }
func (r *Ranger) EmitExtractor() *extract.Extractor { return r.ex }
func (r *Ranger) EmitLogger() logger.Logger         { return r.l }

// Handler wraps Router in the middlewares every request passes through,
// outermost first:
//
//   - middleware.ReportPanic
//   - middleware.ForceHTTPS
//   - middleware.RequestID
//   - middleware.InjectIPAddress
//   - middleware.LogRequest
//   - middleware.RateLimit
//   - middleware.CORS
//
// CORS runs before routing so preflight requests never need a route of their own.
func (r *Ranger) Handler() http.Handler {
	return middleware.Chain(
		r.Router,
		middleware.ReportPanic(r.env, r.l),
		middleware.ForceHTTPS(r.env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(r.l),
		middleware.RateLimit(r.visitors),
		middleware.CORS(r.cfg.CORSOrigin),
	)
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - the context.CancelFunc returned by (*Ranger).Cancel
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), &logger.LogContext{Error: err})
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		r.cancel()
		return err
	case <-r.ctx.Done():
	}

	return r.Shutdown()
}

// Shutdown shuts down the web server, waiting up to ShutdownTimeout for in-flight requests.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
