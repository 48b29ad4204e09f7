package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestTraceFields(t *testing.T) {
	logs := observe(t)

	tp := trace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("selectctl").Start(context.Background(), "check-session")
	defer span.End()

	InfoCtx(ctx, "parent fetched", zap.String("parent_id", "p-1"))
	ErrorCtx(ctx, "parent fetch failed", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	assert.Equal(t, "p-1", fields["parent_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, span.SpanContext().TraceID().String(), GetTraceID(ctx))
}

func TestNoSpan(t *testing.T) {
	logs := observe(t)

	WarnfCtx(context.Background(), "retrying %s", "players")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "retrying players", entries[0].Message)
	assert.NotContains(t, entries[0].ContextMap(), "trace_id")
	assert.Empty(t, GetTraceID(context.Background()))
}
