package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextValues(t *testing.T) {
	ctx := WithBuildID(context.Background(), "b-1")
	ctx = WithStage(ctx, "emit")
	ctx = WithTarget(ctx, "hugo")

	require.Equal(t, LogContext{BuildID: "b-1", Stage: "emit", Target: "hugo"}, GetContext(ctx))
	require.Empty(t, GetContext(context.Background()))
}

func TestLogHelpersAttachContext(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithStage(WithBuildID(context.Background(), "b-2"), "validate")

	InfoContext(ctx, "hello", slog.Int("n", 1))
	DebugContext(ctx, "debug line")

	out := buf.String()
	require.Contains(t, out, "msg=hello")
	require.Contains(t, out, "build_id=b-2")
	require.Contains(t, out, "stage=validate")
	require.Contains(t, out, "n=1")
	require.Contains(t, out, "debug line")
}

func TestAttrsEmpty(t *testing.T) {
	require.Empty(t, Attrs(context.Background()))
}
