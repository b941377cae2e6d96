package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/ihcantabria/api-template/internal/config"
)

// SetupLogger configures a JSON slog logger with environment fields.
func SetupLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{}
	// Outside production, show debug level
	if !cfg.IsProduction() {
		opts.Level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(h).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnvironment),
	)
	return logger
}

// teeHandler fans a record out to two handlers. It is used to attach the
// OTLP log bridge next to the stdout JSON handler without replacing it.
type teeHandler struct {
	primary   slog.Handler
	secondary slog.Handler
}

// NewTeeHandler returns a handler that forwards every record to both
// primary and secondary.
func NewTeeHandler(primary, secondary slog.Handler) slog.Handler {
	return teeHandler{primary: primary, secondary: secondary}
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.primary.Enabled(ctx, level) || t.secondary.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, rec slog.Record) error {
	var err error
	if t.primary.Enabled(ctx, rec.Level) {
		err = t.primary.Handle(ctx, rec.Clone())
	}
	if t.secondary.Enabled(ctx, rec.Level) {
		if herr := t.secondary.Handle(ctx, rec.Clone()); err == nil {
			err = herr
		}
	}
	return err
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{primary: t.primary.WithAttrs(attrs), secondary: t.secondary.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{primary: t.primary.WithGroup(name), secondary: t.secondary.WithGroup(name)}
}
