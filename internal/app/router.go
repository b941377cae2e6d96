// Package app assembles the HTTP application: router, middleware chain,
// and readiness checks.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/ihcantabria/api-template/internal/adapter/httpserver"
	"github.com/ihcantabria/api-template/internal/adapter/observability"
	"github.com/ihcantabria/api-template/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	// Security & instrumentation middleware
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.TimeoutMiddleware(30 * time.Second))
	// TraceMiddleware must wrap RequestID so the request logger picks up
	// real trace and span ids instead of zero values.
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.RequestID())
	// When traces are exported the span stream already records every
	// request; the access log is only wired when that signal is missing.
	if !cfg.ExportTraces || cfg.OTLPEndpoint == "" {
		r.Use(httpserver.AccessLog(cfg))
	}
	r.Use(observability.HTTPMetricsMiddleware)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Demonstration routes, rate limited per client IP
	r.Route(cfg.APIPrefix+"/test", func(tr chi.Router) {
		tr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		tr.Get("/healthcheck", srv.HealthcheckHandler())
		tr.Get("/error", srv.ErrorHandler())
		tr.Get("/external-api-test", srv.ExternalAPIHandler())
		tr.Get("/nested-operations", srv.NestedOperationsHandler())
		tr.Get("/logs-test", srv.LogsTestHandler())
		tr.Get("/telemetry-debug", srv.TelemetryDebugHandler())
	})

	// Landing page, docs and static assets
	r.Get("/", srv.RootHandler())
	r.Get("/docs", srv.DocsHandler())
	r.Get("/openapi.yaml", srv.OpenAPIServe())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// Health and metrics
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })

	return httpserver.SecurityHeaders(r)
}
