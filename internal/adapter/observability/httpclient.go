package observability

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewInstrumentedClient returns an HTTP client whose outbound requests
// carry spans and propagate trace context across service boundaries.
func NewInstrumentedClient(timeout time.Duration) *http.Client {
	transport := otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Host)
		}),
	)
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
