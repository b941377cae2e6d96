package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ihcantabria/api-template/internal/adapter/observability"
	"github.com/ihcantabria/api-template/internal/config"
	"github.com/ihcantabria/api-template/internal/domain"
	"github.com/ihcantabria/api-template/internal/service/processing"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Processing *processing.Service
	// Client performs the outbound demonstration call; instrumented with
	// otelhttp so spans cross the service boundary.
	Client *http.Client
	// Readiness probes, nil checks are skipped.
	ExternalCheck func(ctx context.Context) error
	TmpDirCheck   func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, proc *processing.Service, externalCheck, tmpDirCheck func(context.Context) error) *Server {
	return &Server{
		Cfg:           cfg,
		Processing:    proc,
		Client:        observability.NewInstrumentedClient(cfg.ExternalAPITimeout),
		ExternalCheck: externalCheck,
		TmpDirCheck:   tmpDirCheck,
	}
}

// HealthcheckHandler reports that the service is up.
func (s *Server) HealthcheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		LoggerFrom(r).InfoContext(r.Context(), "healthcheck called")
		writeJSON(w, http.StatusOK, domain.HealthStatus{Status: "ok", Message: "Service is running"})
	}
}

// ErrorHandler deliberately divides by zero to demonstrate panic
// recovery, error logging with stack context, and the error envelope.
// It always responds 500.
func (s *Server) ErrorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lg := LoggerFrom(r)
		defer func() {
			if rec := recover(); rec != nil {
				lg.ErrorContext(r.Context(), "demonstration error triggered", slog.Any("panic", rec))
				writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInternal, rec), nil)
			}
		}()
		numerator, denominator := 100, 0
		_ = numerator / denominator
	}
}

// ExternalAPIHandler calls a public endpoint through the instrumented
// client. Upstream failure maps to 503; success echoes the upstream
// status code.
func (s *Server) ExternalAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lg := LoggerFrom(r)
		lg.InfoContext(r.Context(), "making external call", slog.String("url", s.Cfg.ExternalAPIURL))

		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, s.Cfg.ExternalAPIURL, nil)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInternal, err), nil)
			return
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			observability.ExternalCallsTotal.WithLabelValues("error").Inc()
			lg.ErrorContext(r.Context(), "external call failed", slog.Any("error", err))
			writeError(w, r, fmt.Errorf("%w: external API call failed", domain.ErrUpstreamUnavailable), nil)
			return
		}
		defer func() { _ = resp.Body.Close() }()

		observability.ExternalCallsTotal.WithLabelValues("ok").Inc()
		lg.InfoContext(r.Context(), "external call succeeded", slog.Int("upstream_status", resp.StatusCode))
		writeJSON(w, http.StatusOK, map[string]any{
			"status":          "ok",
			"message":         "External API call successful",
			"external_status": resp.StatusCode,
		})
	}
}

// NestedOperationsHandler runs a three-step workflow inside nested spans,
// with the middle step delegated to the processing service.
func (s *Server) NestedOperationsHandler() http.HandlerFunc {
	tr := otel.Tracer("http.server")
	return func(w http.ResponseWriter, r *http.Request) {
		lg := LoggerFrom(r)
		ctx := r.Context()
		lg.InfoContext(ctx, "starting nested operations")

		func() {
			_, span := tr.Start(ctx, "data_validation")
			defer span.End()
			lg.DebugContext(ctx, "validating input data")
		}()

		var output string
		var err error
		func() {
			pctx, span := tr.Start(ctx, "data_processing")
			defer span.End()
			lg.InfoContext(pctx, "processing data")
			output, err = s.Processing.FakeTask(pctx, "sample data")
		}()
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: processing: %v", domain.ErrInternal, err), nil)
			return
		}

		func() {
			_, span := tr.Start(ctx, "save_results")
			defer span.End()
			lg.DebugContext(ctx, "saving results")
		}()

		lg.InfoContext(ctx, "nested operations completed")
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Nested operations completed",
			"result":  domain.ProcessingResult{Processed: true, Items: 42, Output: output},
		})
	}
}

// LogsTestHandler emits one line per log level so log shipping can be
// verified end to end.
func (s *Server) LogsTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lg := LoggerFrom(r)
		ctx := r.Context()
		lg.DebugContext(ctx, "debug message - detailed debugging info")
		lg.InfoContext(ctx, "info message - general information")
		lg.WarnContext(ctx, "warning message - something might be wrong")
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"message":   "Log test completed - check the collector for trace correlation",
			"logs_sent": []string{"debug", "info", "warn"},
		})
	}
}

// TelemetryDebugHandler creates a root span with child spans and events
// and returns the trace id so export can be verified in the backend.
func (s *Server) TelemetryDebugHandler() http.HandlerFunc {
	tr := otel.Tracer("http.server")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tr.Start(r.Context(), "telemetry_debug")
		defer span.End()
		span.SetAttributes(
			attribute.String("debug_type", "telemetry_verification"),
			attribute.Int64("timestamp", time.Now().Unix()),
		)
		span.AddEvent("debug_start")

		const childSpans = 3
		for i := 0; i < childSpans; i++ {
			func() {
				_, child := tr.Start(ctx, fmt.Sprintf("debug_span_%d", i))
				defer child.End()
				child.SetAttributes(attribute.Int("span_index", i))
				child.AddEvent(fmt.Sprintf("debug_event_%d", i))
			}()
		}
		span.AddEvent("debug_end")

		traceID := trace.SpanContextFromContext(ctx).TraceID().String()
		LoggerFrom(r).InfoContext(ctx, "telemetry debug completed", slog.String("trace_id", traceID))
		writeJSON(w, http.StatusOK, map[string]any{
			"message":       "Telemetry debug completed",
			"trace_id":      traceID,
			"spans_created": childSpans + 1,
		})
	}
}

// ReadyzHandler probes the dependencies of the demonstration routes.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)
		if s.ExternalCheck != nil {
			if err := s.ExternalCheck(ctx); err != nil {
				checks = append(checks, check{Name: "external_api", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "external_api", OK: true})
			}
		}
		if s.TmpDirCheck != nil {
			if err := s.TmpDirCheck(ctx); err != nil {
				checks = append(checks, check{Name: "tmp_dir", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "tmp_dir", OK: true})
			}
		}
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

// OpenAPIServe serves the OpenAPI document if present.
func (s *Server) OpenAPIServe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(s.Cfg.OpenAPIFile)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
