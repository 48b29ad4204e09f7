package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitOpenTelemetry_Disabled(t *testing.T) {
	shutdown, err := InitOpenTelemetry(context.Background(), OtelConfig{Enabled: false})
	require.NoError(t, err)
	shutdown()

	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestInitOpenTelemetry_Enabled(t *testing.T) {
	cfg := OtelConfig{
		Enabled:     true,
		ServiceName: "selectctl-test",
		Environment: "test",
		Endpoint:    "localhost:4318",
		Headers:     map[string]string{"authorization": "test-key"},
		SampleRate:  1.0,
	}

	shutdown, err := InitOpenTelemetry(context.Background(), cfg)
	require.NoError(t, err)
	shutdown()
}

func TestInitOpenTelemetry_InvalidConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  OtelConfig
	}{
		{"missing service", OtelConfig{Enabled: true, Endpoint: "localhost:4318"}},
		{"missing endpoint", OtelConfig{Enabled: true, ServiceName: "svc"}},
		{"bad sample rate", OtelConfig{Enabled: true, ServiceName: "svc", Endpoint: "localhost:4318", SampleRate: 1.5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := InitOpenTelemetry(context.Background(), tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestEndpoint(t *testing.T) {
	testCases := []struct {
		raw      string
		hostPort string
		insecure bool
	}{
		{"localhost:4318", "localhost:4318", true},
		{"http://collector:4318", "collector:4318", true},
		{"https://otel.example.com", "otel.example.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			hostPort, insecure := endpoint(tc.raw)
			assert.Equal(t, tc.hostPort, hostPort)
			assert.Equal(t, tc.insecure, insecure)
		})
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(OtelConfig{ServiceName: "selectctl-test", Environment: "test"})
	require.NoError(t, err)
	require.NotNil(t, res)
}
