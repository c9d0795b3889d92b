package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRate    rate.Limit = 5
	defaultBurst              = 20
	visitorTimeout            = 60 * time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	val         map[string]Visitor
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
	sync.Mutex
}

// NewVisitors constructs a *Visitors limiting each IP address
// to 5 requests every second with bursts of up to 20.
func NewVisitors() *Visitors { return NewVisitorsWithLimit(defaultRate, defaultBurst) }

// NewVisitorsWithLimit constructs a *Visitors limiting each IP address
// to limit requests every second with bursts of up to burst.
func NewVisitorsWithLimit(limit rate.Limit, burst int) *Visitors {
	return &Visitors{
		val:         make(map[string]Visitor),
		limit:       limit,
		burst:       burst,
		lastCleanup: time.Now().UTC(),
	}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len counts the Visitors being tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
// cleanup sweeps at most once a minute.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()

	if time.Since(vs.lastCleanup) < time.Minute {
		return
	}

	vs.lastCleanup = time.Now().UTC()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTimeout {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler,
// responding 429 to visitors over their limit.
// The visitor is identified by the IP address InjectIPAddress stored, if any.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, ok := IPAddress(r.Context())
			if !ok {
				ip = GetIPAddress(r.Header)
			}

			if !visitors.Fetch(ip).Limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
