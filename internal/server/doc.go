// Package server provides the MCP server context, health endpoints, and the
// HTTP transport for the intervals-mcp application.
//
// # Key Components
//
// ServerContext manages the upstream API clients with lazy initialization and
// caching. Clients are built from the environment-derived configuration; tests
// override them with the Set* methods.
//
// HTTPServer wraps an MCP streamable-HTTP server, serving the MCP endpoint on
// /mcp alongside health endpoints, with per-request metrics recording.
//
// HealthChecker exposes Kubernetes-style liveness and readiness probes:
//   - /healthz: liveness (process is up)
//   - /readyz: readiness (server accepts requests)
//   - /healthz/detailed: readiness plus per-upstream credential status
//
// MetricsServer runs the Prometheus /metrics endpoint on a dedicated port,
// keeping operational scrape traffic off the MCP transport.
package server
