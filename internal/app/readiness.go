package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ihcantabria/api-template/internal/config"
)

// BuildReadinessChecks returns the two readiness probes used by /readyz:
// reachability of the demonstration external API and writability of the
// temp directory.
func BuildReadinessChecks(cfg config.Config) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	externalCheck := func(ctx context.Context) error {
		if cfg.ExternalAPIURL == "" {
			return fmt.Errorf("external api url not configured")
		}
		client := &http.Client{Timeout: 2 * time.Second}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.ExternalAPIURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		return fmt.Errorf("external api status %d", resp.StatusCode)
	}
	tmpDirCheck := func(_ context.Context) error {
		f, err := os.CreateTemp(cfg.TmpDir, "readyz-*")
		if err != nil {
			return fmt.Errorf("tmp dir not writable: %w", err)
		}
		name := f.Name()
		_ = f.Close()
		return os.Remove(filepath.Clean(name))
	}
	return externalCheck, tmpDirCheck
}
