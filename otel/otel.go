package otel

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/bothellselect/select-client/otel/metrics"
	"github.com/bothellselect/select-client/utils/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// ServiceVersion is stamped into the OTel resource; overridden at link time.
var ServiceVersion = "dev"

type OtelConfig struct {
	Enabled     bool
	Endpoint    string // host:port, or a full http(s) URL
	ServiceName string
	Headers     map[string]string
	Environment string
	SampleRate  float64 // 0.0 to 1.0
}

// InitOpenTelemetry installs the global trace and meter providers and the W3C
// propagator, then creates the metric instruments. With Enabled false it only
// installs the propagator so outgoing calls still carry incoming trace headers.
func InitOpenTelemetry(ctx context.Context, cfg OtelConfig) (func(), error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled {
		return func() {}, nil
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tracerShutdown, err := setupTracing(ctx, res, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup tracing: %w", err)
	}

	metricsShutdown, err := setupMetrics(ctx, res, cfg)
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, fmt.Errorf("failed to setup metrics: %w", err)
	}

	if err := metrics.Init(cfg.ServiceName); err != nil {
		_ = tracerShutdown(ctx)
		_ = metricsShutdown(ctx)
		return nil, err
	}

	shutdown := func() {
		if err := tracerShutdown(context.Background()); err != nil {
			logger.LogError("error shutting down tracer", zap.Error(err))
		}
		if err := metricsShutdown(context.Background()); err != nil {
			logger.LogError("error shutting down metrics", zap.Error(err))
		}
	}

	return shutdown, nil
}

func validateConfig(cfg OtelConfig) error {
	if cfg.ServiceName == "" {
		return errors.New("ServiceName is required")
	}
	if cfg.Endpoint == "" {
		return errors.New("Endpoint is required")
	}
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("SampleRate must be between 0.0 and 1.0, got %f", cfg.SampleRate)
	}
	return nil
}

func newResource(cfg OtelConfig) (*resource.Resource, error) {
	hostName, _ := os.Hostname()

	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
		semconv.HostName(hostName),
	), nil
}

// endpoint splits cfg.Endpoint into the exporter's host:port and whether the
// connection is plain HTTP.
func endpoint(raw string) (hostPort string, insecure bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw, true
	}
	return u.Host, u.Scheme != "https"
}

func setupTracing(ctx context.Context, res *resource.Resource, cfg OtelConfig) (func(context.Context) error, error) {
	hostPort, insecure := endpoint(cfg.Endpoint)
	exporterOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(hostPort),
	}
	if len(cfg.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	if insecure {
		exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
	}

	traceExporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRate))),
	)
	otel.SetTracerProvider(traceProvider)

	return traceProvider.Shutdown, nil
}

func setupMetrics(ctx context.Context, res *resource.Resource, cfg OtelConfig) (func(context.Context) error, error) {
	hostPort, insecure := endpoint(cfg.Endpoint)
	exporterOpts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(hostPort),
	}
	if len(cfg.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithHeaders(cfg.Headers))
	}
	if insecure {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
	}

	metricExporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	return meterProvider.Shutdown, nil
}
