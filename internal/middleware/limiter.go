package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rate limit tiers.
const (
	// Auth, payment order creation and verification.
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// Everything else.
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	sweepInterval = time.Minute
	visitorTTL    = 3 * time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// registry tracks one token bucket per identity+tier key and evicts idle
// entries in the background.
type registry struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func newRegistry() *registry {
	reg := &registry{visitors: make(map[string]*visitor)}
	go reg.sweep()
	return reg
}

func (g *registry) get(key string, r rate.Limit, b int) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, ok := g.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r, b)}
		g.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (g *registry) sweep() {
	for {
		time.Sleep(sweepInterval)

		g.mu.Lock()
		for key, v := range g.visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(g.visitors, key)
			}
		}
		g.mu.Unlock()
	}
}

var buckets = newRegistry()

// RateLimit throttles per identity, with a tighter bucket for auth and
// payment endpoints.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)

		var identity string
		if u, ok := UserFromContext(r.Context()); ok {
			identity = "user:" + u.ID
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			identity = "ip:" + ip
		}

		// Separate buckets per tier so strict actions cannot be starved by
		// general browsing, and vice versa.
		limiter := buckets.get(identity+":"+tier, limit, burst)
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resolveRateTier decides which limit applies to the request path.
func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	path := r.URL.Path
	if strings.HasPrefix(path, "/api/payment") || strings.HasPrefix(path, "/api/auth") {
		return limitStrict, burstStrict, "strict"
	}
	return limitGeneral, burstGeneral, "general"
}
