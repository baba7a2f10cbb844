package logger

import (
	"context"
	"log/slog"
	"os"
)

// New returns the process-wide structured logger: JSON to stdout, debug
// level outside deployed environments. The auth gate logs credential
// rejection kinds at debug, so local runs show them while production
// stays quiet about individual bad tokens.
func New(appEnv string) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "local" || appEnv == "dev" {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

type ctxKey struct{}

// With stores a logger in context. The request middleware uses it to carry
// the request_id-scoped logger down into services.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From gets a logger from context, falling back to slog.Default().
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
