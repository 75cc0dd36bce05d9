// Package metrics provides Prometheus-compatible metrics for the mock server.
//
// The package writes the Prometheus text exposition format
// (text/plain; version=0.0.4) with the standard library only.
//
// Supported metric types:
//   - Counter: monotonically increasing value (e.g., request counts)
//   - Gauge: value that can go up or down (e.g., registered routes)
//   - Histogram: distribution of values with fixed buckets (e.g., latencies)
//
// All metrics are safe for concurrent use.
//
// # Usage
//
//	reg := metrics.NewRegistry()
//	m := metrics.NewHTTPMetrics(reg)
//	metrics.RegisterRuntime(reg)
//
//	vec, _ := m.Requests.WithLabels("GET", "/pets/{id}", "200")
//	_ = vec.Inc()
//
//	http.Handle("/metrics", reg.Handler())
package metrics
