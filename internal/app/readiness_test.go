package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ihcantabria/api-template/internal/config"
)

func TestBuildReadinessChecks_External(t *testing.T) {
	t.Run("reachable upstream", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer upstream.Close()

		externalCheck, _ := BuildReadinessChecks(config.Config{ExternalAPIURL: upstream.URL, TmpDir: t.TempDir()})
		if err := externalCheck(context.Background()); err != nil {
			t.Fatalf("check should pass: %v", err)
		}
	})
	t.Run("upstream error status", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		externalCheck, _ := BuildReadinessChecks(config.Config{ExternalAPIURL: upstream.URL, TmpDir: t.TempDir()})
		if err := externalCheck(context.Background()); err == nil {
			t.Fatalf("check should fail on 502")
		}
	})
	t.Run("unconfigured", func(t *testing.T) {
		externalCheck, _ := BuildReadinessChecks(config.Config{TmpDir: t.TempDir()})
		if err := externalCheck(context.Background()); err == nil {
			t.Fatalf("check should fail without a url")
		}
	})
}

func TestBuildReadinessChecks_TmpDir(t *testing.T) {
	t.Run("writable", func(t *testing.T) {
		_, tmpCheck := BuildReadinessChecks(config.Config{TmpDir: t.TempDir()})
		if err := tmpCheck(context.Background()); err != nil {
			t.Fatalf("tmp dir should be writable: %v", err)
		}
	})
	t.Run("missing dir", func(t *testing.T) {
		_, tmpCheck := BuildReadinessChecks(config.Config{TmpDir: "/nonexistent/really/not/here"})
		if err := tmpCheck(context.Background()); err == nil {
			t.Fatalf("missing dir should fail the check")
		}
	})
}
