package echo

import (
	"time"

	"github.com/bothellselect/select-client/interfaces/http/echo/middleware"
	"github.com/bothellselect/select-client/otel/metrics"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Middleware instruments dashboard requests with a server span (otelecho) and the
// request metrics. Requests matching skipper bypass both.
func Middleware(serviceName string, skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	baseMiddleware := otelecho.Middleware(serviceName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		traced := baseMiddleware(next)

		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			ctx := c.Request().Context()
			method, route := c.Request().Method, c.Path()
			start := time.Now()
			metrics.IncrementInFlightRequests(ctx, method, route)
			defer metrics.DecrementInFlightRequests(ctx, method, route)

			err := traced(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			metrics.RecordHTTPRequest(ctx, method, route, status, time.Since(start))

			span := trace.SpanFromContext(c.Request().Context())
			if span.IsRecording() {
				span.SetAttributes(attribute.String("http.route", route))
				if sid, ok := c.Get(middleware.RequestSessionKey).(string); ok && sid != "" {
					span.SetAttributes(attribute.Bool("session.present", true))
				}
				if err != nil {
					span.SetAttributes(attribute.String("error.message", err.Error()))
				}
			}

			return err
		}
	}
}

// SkipHealth skips the liveness probe.
func SkipHealth(c echo.Context) bool {
	return c.Path() == "/healthz"
}
