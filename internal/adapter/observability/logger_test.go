package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/ihcantabria/api-template/internal/config"
)

func TestSetupLogger_LevelPerEnvironment(t *testing.T) {
	local := SetupLogger(config.Config{AppEnvironment: config.EnvLocal})
	if !local.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("local logger should enable debug")
	}

	prod := SetupLogger(config.Config{AppEnvironment: config.EnvProduction})
	if prod.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("production logger should not enable debug")
	}
	if !prod.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("production logger should enable info")
	}
}

// countingHandler records how many records it received.
type countingHandler struct {
	count int
	level slog.Level
}

func (c *countingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= c.level }
func (c *countingHandler) Handle(context.Context, slog.Record) error {
	c.count++
	return nil
}
func (c *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *countingHandler) WithGroup(string) slog.Handler      { return c }

func TestTeeHandler_FansOut(t *testing.T) {
	primary := &countingHandler{level: slog.LevelInfo}
	secondary := &countingHandler{level: slog.LevelDebug}
	lg := slog.New(NewTeeHandler(primary, secondary))

	lg.Info("hello")
	lg.Debug("quiet")

	if primary.count != 1 {
		t.Fatalf("primary should only see the info record, got %d", primary.count)
	}
	if secondary.count != 2 {
		t.Fatalf("secondary should see both records, got %d", secondary.count)
	}
}
