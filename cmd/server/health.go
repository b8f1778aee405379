package main

import (
	"context"
	"net/http"
	"time"

	"checkout/pkg/platform/httputil"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler reports each configured backing service.
func healthHandler(deps *infra) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]error{}
		if deps.redis != nil {
			checks["redis"] = deps.redis.Health(ctx)
		}
		if deps.db != nil {
			checks["postgres"] = deps.db.PingContext(ctx)
		}
		if deps.kafka != nil {
			checks["kafka"] = deps.kafka.Health(ctx)
		}

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, err := range checks {
			if err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
