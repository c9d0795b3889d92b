package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/middleware"
	"github.com/xy-planning-network/vouch/logger"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their handlers,
// recovering from panics in any of them.
type Router struct {
	Env           vouch.Environment
	everyReqStack []middleware.Adapter
	logger        logger.Logger
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
// Panics recovered from handlers are logged through ls.
func New(env vouch.Environment, ls logger.Logger) *Router {
	return &Router{Env: env, logger: ls, r: mux.NewRouter()}
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(r.chain(handler))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleMethodNotAllowed sets the provided [http.HandlerFunc] as the function
// for when a registered path is requested with an unregistered method.
func (r *Router) HandleMethodNotAllowed(handler http.HandlerFunc) {
	r.r.MethodNotAllowedHandler = r.chain(handler)
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = r.chain(handler)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := make([]middleware.Adapter, 0, len(middlewares)+len(route.Middlewares))
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)

		r.r.Handle(route.Path, r.chain(route.Handler, mws...)).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Only routes registered afterwards include them.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logger:        r.logger,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
	}
}

// chain wraps handler in the every-request stack, then mws,
// recovering from panics closest to handler.
func (r *Router) chain(handler http.Handler, mws ...middleware.Adapter) http.Handler {
	stack := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(mws))
	stack = append(stack, r.everyReqStack...)
	stack = append(stack, mws...)

	return middleware.Chain(middleware.ReportPanic(r.Env, r.logger)(handler), stack...)
}
