// Package observability carries build identifiers through a context and
// attaches them to log records.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// LogContext is the build scope attached to log records.
type LogContext struct {
	BuildID string
	Stage   string
	Target  string
}

type logContextKey struct{}

func with(ctx context.Context, set func(*LogContext)) context.Context {
	lc := GetContext(ctx)
	set(&lc)
	return context.WithValue(ctx, logContextKey{}, lc)
}

// WithBuildID scopes ctx to one build.
func WithBuildID(ctx context.Context, buildID string) context.Context {
	return with(ctx, func(lc *LogContext) { lc.BuildID = buildID })
}

// WithStage scopes ctx to a pipeline stage such as "validate" or "emit".
func WithStage(ctx context.Context, stage string) context.Context {
	return with(ctx, func(lc *LogContext) { lc.Stage = stage })
}

// WithTarget scopes ctx to one engine target.
func WithTarget(ctx context.Context, target string) context.Context {
	return with(ctx, func(lc *LogContext) { lc.Target = target })
}

// GetContext returns the scope carried by ctx, zero when none.
func GetContext(ctx context.Context) LogContext {
	lc, _ := ctx.Value(logContextKey{}).(LogContext)
	return lc
}

// Attrs returns the non-empty scope fields of ctx as slog attributes.
func Attrs(ctx context.Context) []slog.Attr {
	lc := GetContext(ctx)
	attrs := make([]slog.Attr, 0, 3)
	for _, a := range []struct {
		val  string
		attr func(string) slog.Attr
	}{
		{lc.BuildID, logfields.BuildID},
		{lc.Stage, logfields.Stage},
		{lc.Target, logfields.Target},
	} {
		if a.val != "" {
			attrs = append(attrs, a.attr(a.val))
		}
	}
	return attrs
}

func log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	slog.LogAttrs(ctx, level, msg, append(Attrs(ctx), attrs...)...)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelDebug, msg, attrs)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelInfo, msg, attrs)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelWarn, msg, attrs)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	log(ctx, slog.LevelError, msg, attrs)
}
