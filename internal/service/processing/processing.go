// Package processing contains the placeholder work simulator used by the
// demonstration routes.
package processing

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ihcantabria/api-template/internal/adapter/observability"
	obsctx "github.com/ihcantabria/api-template/internal/observability"
)

// Service simulates a time-consuming processing step. Replace it with
// real business logic when building on the template.
type Service struct {
	Delay time.Duration
}

// New returns a processing service that pretends to work for delay.
func New(delay time.Duration) *Service {
	return &Service{Delay: delay}
}

// FakeTask waits for the configured delay and returns the upper-cased
// input. The wait honors context cancellation so a dropped request does
// not pin the goroutine.
func (s *Service) FakeTask(ctx context.Context, data string) (string, error) {
	ctx, span := otel.Tracer("service.processing").Start(ctx, "fake_processing_task")
	defer span.End()
	span.SetAttributes(
		attribute.Int("input_bytes", len(data)),
		attribute.String("delay", s.Delay.String()),
	)

	lg := obsctx.LoggerFromContext(ctx)
	lg.DebugContext(ctx, "fake processing task started")

	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	observability.ProcessingTasksTotal.Inc()
	lg.DebugContext(ctx, "fake processing task completed")
	return strings.ToUpper(data), nil
}
