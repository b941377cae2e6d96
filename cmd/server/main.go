// Command server starts the API template HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpserver "github.com/ihcantabria/api-template/internal/adapter/httpserver"
	"github.com/ihcantabria/api-template/internal/adapter/observability"
	"github.com/ihcantabria/api-template/internal/app"
	"github.com/ihcantabria/api-template/internal/config"
	"github.com/ihcantabria/api-template/internal/service/processing"
	"github.com/ihcantabria/api-template/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP and demonstration instrumentation.
	observability.InitMetrics()

	ctx := context.Background()
	shutdownTelemetry, err := observability.SetupTelemetry(ctx, cfg)
	if err != nil {
		// The service keeps running without telemetry rather than failing startup.
		slog.Error("failed to setup telemetry", slog.Any("error", err))
	}
	defer func() {
		if shutdownTelemetry != nil {
			_ = shutdownTelemetry(context.Background())
		}
	}()

	slog.Info("starting service",
		slog.String("name", version.ServiceName),
		slog.String("version", version.Version),
		slog.String("environment", cfg.AppEnvironment))

	// Services
	proc := processing.New(cfg.ProcessingDelay)

	// Readiness checks
	externalCheck, tmpDirCheck := app.BuildReadinessChecks(cfg)

	// HTTP server
	srv := httpserver.NewServer(cfg, proc, externalCheck, tmpDirCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
	slog.Info("shutdown completed")
}
