package instrumentation

import (
	"context"
	"testing"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	if provider.Enabled() {
		t.Error("Provider should be disabled")
	}
	if provider.Metrics() == nil {
		t.Error("Disabled provider should still return a no-op metrics recorder")
	}
	if provider.Tracer("test") == nil {
		t.Error("Disabled provider should return a no-op tracer")
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewProvider_Prometheus(t *testing.T) {
	config := Config{
		ServiceName:       "gmailclient-test",
		ServiceVersion:    "test",
		Enabled:           true,
		MetricsExporter:   ExporterPrometheus,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 0.1,
	}

	provider, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	}()

	if !provider.Enabled() {
		t.Error("Provider should be enabled")
	}
	if provider.Metrics() == nil {
		t.Fatal("Metrics() returned nil")
	}
	if provider.Tracer("test") == nil {
		t.Error("Tracer() returned nil")
	}
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	config := Config{
		ServiceName:     "gmailclient-test",
		Enabled:         true,
		MetricsExporter: "statsd",
		TracingExporter: ExporterNone,
	}

	if _, err := NewProvider(context.Background(), config); err == nil {
		t.Error("NewProvider() should fail for unsupported metrics exporter")
	}
}

func TestNewProvider_OTLPRequiresEndpoint(t *testing.T) {
	config := Config{
		ServiceName:     "gmailclient-test",
		Enabled:         true,
		MetricsExporter: ExporterOTLP,
		TracingExporter: ExporterNone,
	}

	if _, err := NewProvider(context.Background(), config); err == nil {
		t.Error("NewProvider() should fail for OTLP metrics exporter without endpoint")
	}
}
