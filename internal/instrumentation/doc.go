// Package instrumentation provides OpenTelemetry instrumentation for
// gmailclient.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for Gmail API requests and resource operations
//   - Distributed tracing for tool invocations and API calls
//   - Prometheus metrics export via /metrics endpoint on a dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Gmail API Metrics:
//   - gmail_api_requests_total: Counter of API round trips by method, path, status
//   - gmail_api_request_duration_seconds: Histogram of API round trip durations
//   - gmail_operations_total: Counter of resource operations by resource, operation, status
//   - gmail_operation_duration_seconds: Histogram of resource operation durations
//
// OAuth Authentication Metrics:
//   - oauth_auth_total: Counter of OAuth authentication events by result
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// The *Metrics type implements the base API client's RequestObserver, so it
// can be attached with api.WithObserver to record every round trip.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: gmailclient)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "gmailclient",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	apiClient, err := api.NewClient(api.Config{},
//		api.WithObserver(provider.Metrics()))
package instrumentation
