package otel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// StartHTTPSpan starts a client span for one league API call. The returned finish
// func ends the span and must be called once the response (or error) is known.
func StartHTTPSpan(ctx context.Context, serviceName, operation, method, baseURL, path string) (context.Context, func(statusCode int, err error)) {
	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(ctx, fmt.Sprintf("HTTP.league-api.%s", operation), trace.WithSpanKind(trace.SpanKindClient))

	span.SetAttributes(
		semconv.HTTPRequestMethodKey.String(method),
		semconv.URLFull(baseURL+path),
		attribute.String("http.target", path),
	)

	return ctx, func(statusCode int, err error) {
		defer span.End()

		if statusCode > 0 {
			span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(statusCode))
		}

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case statusCode >= 400:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
		default:
			span.SetStatus(codes.Ok, "success")
		}
	}
}

// InjectTraceHeaders writes the W3C trace headers of ctx into headers, allocating
// the map when nil.
func InjectTraceHeaders(ctx context.Context, headers map[string]string) map[string]string {
	if headers == nil {
		headers = make(map[string]string)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))
	return headers
}

func InjectTraceHeadersIntoRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// WithTraceHeaders is a resty request middleware propagating the request context's
// trace to the server.
func WithTraceHeaders(_ *resty.Client, req *resty.Request) error {
	otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))
	return nil
}

func NewTracedRestyClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		OnBeforeRequest(WithTraceHeaders)
}
