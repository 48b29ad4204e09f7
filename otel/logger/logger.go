// Package logger adds the active span's trace and span ids to log entries.
package logger

import (
	"context"
	"fmt"

	"github.com/bothellselect/select-client/utils/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logger.LogInfo(msg, append(fields, TraceFields(ctx)...)...)
}

func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logger.LogWarn(msg, append(fields, TraceFields(ctx)...)...)
}

func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logger.LogDebug(msg, append(fields, TraceFields(ctx)...)...)
}

// ErrorCtx logs msg with err attached; err may be nil.
func ErrorCtx(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.LogError(msg, append(fields, TraceFields(ctx)...)...)
}

func InfofCtx(ctx context.Context, format string, args ...interface{}) {
	InfoCtx(ctx, fmt.Sprintf(format, args...))
}

func WarnfCtx(ctx context.Context, format string, args ...interface{}) {
	WarnCtx(ctx, fmt.Sprintf(format, args...))
}

// TraceFields returns trace_id and span_id fields, or nothing outside a span.
func TraceFields(ctx context.Context) []zap.Field {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	}
}

func GetTraceID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		return spanContext.TraceID().String()
	}
	return ""
}
