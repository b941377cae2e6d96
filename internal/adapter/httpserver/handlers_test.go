package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpserver "github.com/ihcantabria/api-template/internal/adapter/httpserver"
	"github.com/ihcantabria/api-template/internal/config"
	"github.com/ihcantabria/api-template/internal/service/processing"
)

func newTestServer(cfg config.Config) *httpserver.Server {
	return httpserver.NewServer(cfg, processing.New(5*time.Millisecond), nil, nil)
}

func TestHealthcheckHandler(t *testing.T) {
	s := newTestServer(config.Config{})
	rec := httptest.NewRecorder()
	s.HealthcheckHandler()(rec, httptest.NewRequest(http.MethodGet, "/test/healthcheck", nil))

	resp := rec.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close() //nolint:errcheck

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "Service is running", body["message"])
}

func TestErrorHandler_Always500(t *testing.T) {
	s := newTestServer(config.Config{})
	rec := httptest.NewRecorder()
	s.ErrorHandler()(rec, httptest.NewRequest(http.MethodGet, "/test/error", nil))

	resp := rec.Result()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	defer resp.Body.Close() //nolint:errcheck

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	inner, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "INTERNAL", inner["code"])
	require.Contains(t, inner["message"], "divide by zero")
}

func TestExternalAPIHandler_UpstreamOK(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"slideshow":{}}`))
	}))
	defer upstream.Close()

	s := newTestServer(config.Config{ExternalAPIURL: upstream.URL, ExternalAPITimeout: 2 * time.Second})
	rec := httptest.NewRecorder()
	s.ExternalAPIHandler()(rec, httptest.NewRequest(http.MethodGet, "/test/external-api-test", nil))

	resp := rec.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close() //nolint:errcheck

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, float64(http.StatusOK), body["external_status"])
}

func TestExternalAPIHandler_UpstreamDown(t *testing.T) {
	// Close the server immediately so the call fails at dial time.
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	s := newTestServer(config.Config{ExternalAPIURL: url, ExternalAPITimeout: time.Second})
	rec := httptest.NewRecorder()
	s.ExternalAPIHandler()(rec, httptest.NewRequest(http.MethodGet, "/test/external-api-test", nil))

	resp := rec.Result()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	defer resp.Body.Close() //nolint:errcheck

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	inner, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "UPSTREAM_UNAVAILABLE", inner["code"])
}

func TestNestedOperationsHandler(t *testing.T) {
	s := newTestServer(config.Config{})
	rec := httptest.NewRecorder()
	s.NestedOperationsHandler()(rec, httptest.NewRequest(http.MethodGet, "/test/nested-operations", nil))

	resp := rec.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close() //nolint:errcheck

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, result["processed"])
	require.Equal(t, float64(42), result["items"])
	require.Equal(t, "SAMPLE DATA", result["output"])
}

func TestLogsTestHandler(t *testing.T) {
	s := newTestServer(config.Config{})
	rec := httptest.NewRecorder()
	s.LogsTestHandler()(rec, httptest.NewRequest(http.MethodGet, "/test/logs-test", nil))

	resp := rec.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close() //nolint:errcheck

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.Len(t, body["logs_sent"], 3)
}

func TestTelemetryDebugHandler(t *testing.T) {
	s := newTestServer(config.Config{})
	rec := httptest.NewRecorder()
	s.TelemetryDebugHandler()(rec, httptest.NewRequest(http.MethodGet, "/test/telemetry-debug", nil))

	resp := rec.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close() //nolint:errcheck

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, float64(4), body["spans_created"])
	require.NotEmpty(t, body["trace_id"])
}

func TestReadyzHandler(t *testing.T) {
	t.Run("all ok", func(t *testing.T) {
		s := newTestServer(config.Config{})
		s.ExternalCheck = func(context.Context) error { return nil }
		s.TmpDirCheck = func(context.Context) error { return nil }

		rec := httptest.NewRecorder()
		s.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Result().StatusCode)
	})
	t.Run("external failing", func(t *testing.T) {
		s := newTestServer(config.Config{})
		s.ExternalCheck = func(context.Context) error { return errors.New("unreachable") }
		s.TmpDirCheck = func(context.Context) error { return nil }

		rec := httptest.NewRecorder()
		s.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		resp := rec.Result()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		defer resp.Body.Close() //nolint:errcheck

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		checks, ok := body["checks"].([]any)
		require.True(t, ok)
		require.Len(t, checks, 2)
	})
}

func TestOpenAPIServe(t *testing.T) {
	t.Run("missing file 404", func(t *testing.T) {
		s := newTestServer(config.Config{OpenAPIFile: filepath.Join(t.TempDir(), "missing.yaml")})
		rec := httptest.NewRecorder()
		s.OpenAPIServe()(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
		require.Equal(t, http.StatusNotFound, rec.Result().StatusCode)
	})
	t.Run("serves document", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "openapi.yaml")
		require.NoError(t, os.WriteFile(file, []byte("openapi: 3.0.3\n"), 0o600))
		s := newTestServer(config.Config{OpenAPIFile: file})
		rec := httptest.NewRecorder()
		s.OpenAPIServe()(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
		require.Equal(t, http.StatusOK, rec.Result().StatusCode)
		require.Contains(t, rec.Body.String(), "openapi: 3.0.3")
	})
}

func TestRootHandler_LandingPage(t *testing.T) {
	s := newTestServer(config.Config{APIRootPath: "/api"})
	rec := httptest.NewRecorder()
	s.RootHandler()(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	resp := rec.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body := rec.Body.String()
	require.Contains(t, body, "api-template")
	require.Contains(t, body, "/api/docs")
}

func TestDocsHandler(t *testing.T) {
	s := newTestServer(config.Config{APIRootPath: "/api"})
	rec := httptest.NewRecorder()
	s.DocsHandler()(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

	require.Equal(t, http.StatusOK, rec.Result().StatusCode)
	require.Contains(t, rec.Body.String(), "swagger-ui")
	require.Contains(t, rec.Body.String(), "/api/openapi.yaml")
}
