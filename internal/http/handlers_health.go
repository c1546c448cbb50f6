package httpx

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// HealthCheck reports the health of one dependency.
type HealthCheck func(ctx context.Context) error

// healthCheckTimeout bounds every dependency probe.
const healthCheckTimeout = 2 * time.Second

// HealthHandler answers readiness/liveness probes. With no checks it always
// reports ok; otherwise any failing check turns the answer into 503.
type HealthHandler struct {
	Checks map[string]HealthCheck
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{"status": "ok"}

	if h != nil && len(h.Checks) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		names := make([]string, 0, len(h.Checks))
		for name := range h.Checks {
			names = append(names, name)
		}
		sort.Strings(names)

		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := h.Checks[name](ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				continue
			}
			results[name] = "ok"
		}
		body["checks"] = results
	}

	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		return
	}
	WriteJSON(w, status, body)
}
