package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Session check outcomes.
const (
	OutcomeAnonymous     = "anonymous"
	OutcomeAdmin         = "admin"
	OutcomeParent        = "parent"
	OutcomeClaimsOnly    = "claims_fallback"
	OutcomeKnown         = "known"
	OutcomeExpired       = "expired"
	OutcomeStorageFailed = "storage_failed"
)

var (
	meter metric.Meter

	// Dashboard shell
	httpRequestsTotal    metric.Int64Counter
	httpRequestDuration  metric.Float64Histogram
	httpRequestsInFlight metric.Int64UpDownCounter

	// Backend API
	backendCallsTotal   metric.Int64Counter
	backendCallDuration metric.Float64Histogram

	// Sessions
	sessionChecksTotal metric.Int64Counter
	activeSessions     metric.Int64UpDownCounter
)

// Init creates the instruments on the global meter provider. Recording before Init
// is a no-op.
func Init(serviceName string) error {
	meter = otel.Meter(serviceName)

	var err error

	httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of dashboard HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Dashboard HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	httpRequestsInFlight, err = meter.Int64UpDownCounter(
		"http_requests_in_flight",
		metric.WithDescription("Number of dashboard HTTP requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_in_flight gauge: %w", err)
	}

	backendCallsTotal, err = meter.Int64Counter(
		"backend_calls_total",
		metric.WithDescription("Total number of league API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create backend_calls_total counter: %w", err)
	}

	backendCallDuration, err = meter.Float64Histogram(
		"backend_call_duration_seconds",
		metric.WithDescription("League API call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create backend_call_duration_seconds histogram: %w", err)
	}

	sessionChecksTotal, err = meter.Int64Counter(
		"session_checks_total",
		metric.WithDescription("Session reconciliations by outcome"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create session_checks_total counter: %w", err)
	}

	activeSessions, err = meter.Int64UpDownCounter(
		"dashboard_sessions_active",
		metric.WithDescription("Browser sessions held by the dashboard shell"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create dashboard_sessions_active gauge: %w", err)
	}

	return nil
}

// RecordHTTPRequest records a served dashboard request.
func RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
	)

	if httpRequestsTotal != nil {
		httpRequestsTotal.Add(ctx, 1, attrs)
	}
	if httpRequestDuration != nil {
		httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

func IncrementInFlightRequests(ctx context.Context, method, route string) {
	addInFlight(ctx, method, route, 1)
}

func DecrementInFlightRequests(ctx context.Context, method, route string) {
	addInFlight(ctx, method, route, -1)
}

func addInFlight(ctx context.Context, method, route string, delta int64) {
	if httpRequestsInFlight == nil {
		return
	}
	httpRequestsInFlight.Add(ctx, delta, metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	))
}

// RecordBackendCall records one call to the league API. operation is the client
// method name, e.g. "GetParent".
func RecordBackendCall(ctx context.Context, operation string, statusCode int, duration time.Duration, success bool) {
	attrs := metric.WithAttributes(
		attribute.String("backend.operation", operation),
		attribute.Int("http.status_code", statusCode),
		attribute.Bool("success", success),
	)

	if backendCallsTotal != nil {
		backendCallsTotal.Add(ctx, 1, attrs)
	}
	if backendCallDuration != nil {
		backendCallDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

// RecordSessionCheck counts a reconciliation that ran to completion.
func RecordSessionCheck(ctx context.Context, outcome string, forced bool) {
	if sessionChecksTotal == nil {
		return
	}
	sessionChecksTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("session.outcome", outcome),
		attribute.Bool("session.forced", forced),
	))
}

func SessionOpened(ctx context.Context) {
	if activeSessions != nil {
		activeSessions.Add(ctx, 1)
	}
}

func SessionClosed(ctx context.Context) {
	if activeSessions != nil {
		activeSessions.Add(ctx, -1)
	}
}
