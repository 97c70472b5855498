// Package api serves the exporter's HTTP endpoints.
//
// Routes (chi router, see handler.go):
//   - GET /: fetch the status page, convert it and return Prometheus
//     text: the exporter block (self timings and request counters, rendered
//     with expfmt) followed by the converted metrics and drift signature
//   - GET /health: liveness probe
//   - GET /metrics: exporter self-observability from a private
//     prometheus.Registry (metrics.go)
//
// A failed fetch answers 503 with an empty body. Every request on / runs to
// completion even if the client goes away.
package api
