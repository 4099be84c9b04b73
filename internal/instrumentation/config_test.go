package instrumentation

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.ServiceName != "gmailclient" {
		t.Errorf("ServiceName = %q, want %q", config.ServiceName, "gmailclient")
	}
	if !config.Enabled {
		t.Error("Enabled should default to true")
	}
	if config.MetricsExporter != ExporterPrometheus {
		t.Errorf("MetricsExporter = %q, want %q", config.MetricsExporter, ExporterPrometheus)
	}
	if config.TracingExporter != ExporterNone {
		t.Errorf("TracingExporter = %q, want %q", config.TracingExporter, ExporterNone)
	}
	if config.TraceSamplingRate != 0.1 {
		t.Errorf("TraceSamplingRate = %f, want 0.1", config.TraceSamplingRate)
	}
	if config.PrometheusEndpoint != "/metrics" {
		t.Errorf("PrometheusEndpoint = %q, want %q", config.PrometheusEndpoint, "/metrics")
	}
	if config.DetailedLabels {
		t.Error("DetailedLabels should default to false")
	}
}

func TestDefaultConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "gmailclient-test")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	config := DefaultConfig()

	if config.ServiceName != "gmailclient-test" {
		t.Errorf("ServiceName = %q, want %q", config.ServiceName, "gmailclient-test")
	}
	if config.Enabled {
		t.Error("Enabled should be false when INSTRUMENTATION_ENABLED=false")
	}
	if config.MetricsExporter != ExporterStdout {
		t.Errorf("MetricsExporter = %q, want %q", config.MetricsExporter, ExporterStdout)
	}
	if config.TraceSamplingRate != 0.5 {
		t.Errorf("TraceSamplingRate = %f, want 0.5", config.TraceSamplingRate)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid defaults",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone, TraceSamplingRate: 0.1},
			wantErr: false,
		},
		{
			name:    "sampling rate too high",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone, TraceSamplingRate: 1.5},
			wantErr: true,
		},
		{
			name:    "sampling rate negative",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone, TraceSamplingRate: -0.1},
			wantErr: true,
		},
		{
			name:    "invalid metrics exporter",
			config:  Config{MetricsExporter: "statsd", TracingExporter: ExporterNone, TraceSamplingRate: 0.1},
			wantErr: true,
		},
		{
			name:    "invalid tracing exporter",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: "jaeger", TraceSamplingRate: 0.1},
			wantErr: true,
		},
		{
			name:    "otlp metrics without endpoint",
			config:  Config{MetricsExporter: ExporterOTLP, TracingExporter: ExporterNone, TraceSamplingRate: 0.1},
			wantErr: true,
		},
		{
			name:    "otlp tracing without endpoint",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterOTLP, TraceSamplingRate: 0.1},
			wantErr: true,
		},
		{
			name:    "otlp with endpoint",
			config:  Config{MetricsExporter: ExporterOTLP, TracingExporter: ExporterOTLP, OTLPEndpoint: "localhost:4318", TraceSamplingRate: 0.1},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
