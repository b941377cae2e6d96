package observability

import (
	"context"
	"testing"

	"github.com/ihcantabria/api-template/internal/config"
)

func TestSetupTelemetry_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := SetupTelemetry(context.Background(), config.Config{})
	if err != nil {
		t.Fatalf("missing endpoint must not be an error: %v", err)
	}
	if shutdown == nil {
		t.Fatalf("shutdown func must always be returned")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown failed: %v", err)
	}
}
