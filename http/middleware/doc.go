/*
The middleware package defines what a middleware is and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- InjectIPAddress
- LogRequest
- RateLimit
- ReportPanic
- RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env, log),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.RateLimit(vs),
		middleware.CORS(origin),
	}
*/
package middleware
