package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// RouterConfig collects the handlers mounted by NewRouter.
type RouterConfig struct {
	Webhook http.Handler
	Races   http.Handler
	Health  map[string]HealthChecker
	Logger  *zap.Logger
}

// NewRouter mounts the webhook, read API, health and metrics endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /webhooks/races", cfg.Webhook)
	if cfg.Races != nil {
		mux.Handle("GET /races/{id}", cfg.Races)
	}
	mux.Handle("GET /healthz", healthz(cfg.Health))
	mux.Handle("/metrics", promhttp.Handler())

	return cors.Default().Handler(WithRequestID(WithAccessLog(cfg.Logger, mux)))
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthz(checks map[string]HealthChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, c := range checks {
			if err := c.Ping(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		writeJSON(w, status, resp)
	})
}
