// Package version holds the service identity reported on the landing
// page and attached to every exported telemetry record.
package version

const (
	// ServiceName is the default service.name resource attribute; it can
	// be overridden with OTEL_SERVICE_NAME.
	ServiceName = "api-template"

	// Version is the template release version.
	Version = "0.3.0"

	// Description is shown on the landing page and in the OpenAPI document.
	Description = "Starter template for an instrumented HTTP API service: " +
		"structured logging, OpenTelemetry trace and log export, and a set of demonstration endpoints."
)
