// Package observability provides logging, metrics, and telemetry export.
//
// It integrates with OpenTelemetry for system monitoring: trace export,
// log export with slog bridging, Prometheus metrics, and instrumented
// outbound HTTP clients.
package observability

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/ihcantabria/api-template/internal/config"
	"github.com/ihcantabria/api-template/internal/version"
)

// SetupTelemetry configures OTLP trace and log export if an endpoint is
// provided. Trace export additionally requires cfg.ExportTraces; log
// export is always attached when the endpoint is set. The returned
// shutdown function flushes both pipelines and is safe to call even when
// nothing was configured.
//
// Failures here are reported to the caller but are not fatal by
// convention: the service runs without telemetry rather than refusing to
// start.
func SetupTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	if cfg.OTLPEndpoint == "" {
		slog.Warn("OTLP endpoint not set; telemetry export disabled")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(cfg.OTELServiceName),
		semconv.ServiceVersionKey.String(version.Version),
		semconv.DeploymentEnvironmentKey.String(cfg.AppEnvironment),
		semconv.ServiceInstanceIDKey.String(uuid.NewString()),
	))
	if err != nil {
		return func(context.Context) error { return nil }, err
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdowns {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	if cfg.ExportTraces {
		if err := setupTraces(ctx, cfg, res, &shutdowns); err != nil {
			return shutdown, err
		}
	} else {
		slog.Warn("trace export disabled by configuration")
	}

	if err := setupLogs(ctx, cfg, res, &shutdowns); err != nil {
		return shutdown, err
	}

	slog.Info("telemetry configured",
		slog.String("endpoint", cfg.OTLPEndpoint),
		slog.Bool("traces", bool(cfg.ExportTraces)),
		slog.String("service", cfg.OTELServiceName),
		slog.String("version", version.Version))
	return shutdown, nil
}

func setupTraces(ctx context.Context, cfg config.Config, res *resource.Resource, shutdowns *[]func(context.Context) error) error {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return err
	}

	// Sampling keeps trace volume bounded in production; everywhere else
	// full sampling aids debugging.
	samplingRatio := 1.0
	if cfg.IsProduction() {
		samplingRatio = 0.1
	}
	sampler := trace.ParentBased(trace.TraceIDRatioBased(samplingRatio))

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)
	*shutdowns = append(*shutdowns, tp.Shutdown)
	slog.Info("tracing configured", slog.Float64("sampling_ratio", samplingRatio))
	return nil
}

func setupLogs(ctx context.Context, cfg config.Config, res *resource.Resource, shutdowns *[]func(context.Context) error) error {
	exporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlploggrpc.WithInsecure(),
	)
	if err != nil {
		return err
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)
	*shutdowns = append(*shutdowns, lp.Shutdown)

	// Fan the default logger out to the OTLP bridge so records reach the
	// collector with trace correlation, without losing stdout JSON.
	bridge := otelslog.NewHandler(cfg.OTELServiceName, otelslog.WithLoggerProvider(lp))
	slog.SetDefault(slog.New(NewTeeHandler(slog.Default().Handler(), bridge)))
	slog.Info("log export configured")
	return nil
}
