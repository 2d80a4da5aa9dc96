package handlers

import (
	"context"
	"net/http"
	"time"

	"pawket-be/internal/cache"
)

// Pinger is the database health dependency.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports service liveness plus database and cache reachability.
// Cache being down degrades the status but keeps the endpoint at 200, the
// store can serve without it.
func Health(db Pinger, store *cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		checks := map[string]string{}

		if err := db.PingContext(ctx); err != nil {
			status = "unavailable"
			checks["database"] = "down"
		} else {
			checks["database"] = "up"
		}

		switch {
		case store == nil:
			checks["cache"] = "disabled"
		case store.Ping(ctx) != nil:
			checks["cache"] = "down"
			if status == "ok" {
				status = "degraded"
			}
		default:
			checks["cache"] = "up"
		}

		code := http.StatusOK
		if status == "unavailable" {
			code = http.StatusServiceUnavailable
		}

		body := map[string]any{
			"status": status,
			"checks": checks,
		}
		if checks["cache"] == "up" {
			hits, misses := store.Stats()
			body["cache_stats"] = map[string]uint64{"hits": hits, "misses": misses}
		}

		respondJSON(w, code, body)
	}
}
