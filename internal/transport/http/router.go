// Package httptransport wires the edge gateway's HTTP surface: operational
// endpoints, the backend API proxy, and the gated locale-routed pass-through
// to the rendering upstream.
package httptransport

import (
	"log/slog"
	"net/http"

	"acont-edge/internal/gate"
	"acont-edge/internal/locale"
	"acont-edge/internal/platform/metrics"
	"acont-edge/internal/platform/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the router needs; main builds it once.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Gate    *gate.Gate
	Locales *locale.Resolver
	Auditor middleware.Auditor

	// Upstream renders pages the gate passes; Backend serves /api.
	Upstream http.Handler
	Backend  http.Handler
}

// NewRouter wires the full middleware chain. Static assets and the /api
// subtree never reach the gate; every page route runs locale-prefix
// normalization and then the authorization decision.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Mount("/api", d.Backend)

	r.Group(func(r chi.Router) {
		r.Use(middleware.LocalePrefix(d.Locales))
		r.Use(middleware.Gate(d.Gate, d.Logger, d.Metrics, d.Auditor))
		r.Handle("/*", d.Upstream)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
