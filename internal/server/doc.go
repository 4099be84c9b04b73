// Package server provides the MCP server context and the dedicated metrics
// server for gmailclient.
//
// # Key Components
//
// ServerContext manages Gmail client bundles with lazy initialization and
// caching. It supports multiple accounts backed by the file token cache of
// the internal/google package.
//
// MetricsServer serves Prometheus metrics and health endpoints on a
// dedicated port, isolated from the MCP stdio transport.
//
// HealthChecker provides liveness and readiness handlers suitable for
// Kubernetes probes.
package server
