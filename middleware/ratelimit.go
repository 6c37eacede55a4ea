package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/httprate"
	"golang.org/x/time/rate"

	"github.com/dgrantpete/scoreboard-sim/apperr"
)

// RateLimit caps requests per client IP to requestsPerMinute using a
// sliding-window limiter, independent of which route is hit.
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			apperr.WriteKind(w, apperr.KindRateLimited, "too many requests")
		}),
	)
}

// CreateThrottle caps the rate of game creation specifically (spec_full.md
// A5): creating a game costs more than a lookup, since it may trigger an
// immediate advancement (spec §4.6).
type CreateThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewCreateThrottle builds a per-IP token bucket throttle allowing
// createsPerMinute sustained creations with a small burst.
func NewCreateThrottle(createsPerMinute int) *CreateThrottle {
	rps := rate.Limit(float64(createsPerMinute) / 60.0)
	burst := createsPerMinute / 6
	if burst < 1 {
		burst = 1
	}
	return &CreateThrottle{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

func (t *CreateThrottle) limiterFor(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.limiters[key]
	if !ok {
		l = rate.NewLimiter(t.rps, t.burst)
		t.limiters[key] = l
	}
	return l
}

// Middleware wraps a handler, rejecting requests once the caller's bucket
// is empty.
func (t *CreateThrottle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !t.limiterFor(ip).Allow() {
			apperr.WriteKind(w, apperr.KindRateLimited, "game creation rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
