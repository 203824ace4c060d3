// Package instrumentation provides OpenTelemetry-based observability for the
// ms-365-mcp-server application.
//
// Instrumentation is disabled by default for zero overhead and enabled with
// INSTRUMENTATION_ENABLED=true. Metrics are exported through Prometheus
// (default), OTLP, or stdout; traces through OTLP or stdout.
//
// # Metrics
//
//   - graph_requests_total / graph_request_duration_seconds: one pair of
//     samples per Graph API round trip, labeled by method, path class, and
//     status code
//   - graph_token_refresh_total: token refresh attempts labeled by result
//   - http_requests_total / http_request_duration_seconds: inbound HTTP
//     traffic for the streamable-http transport
//
// Graph paths are classified to their first segment (e.g. "/me/messages"
// becomes "/me") to keep metric cardinality bounded regardless of how many
// distinct resources callers touch.
package instrumentation
