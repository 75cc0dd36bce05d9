package metrics

// HTTPMetrics are the metrics recorded for served mock requests.
type HTTPMetrics struct {
	// Requests counts responses. Labels: method, route, status.
	Requests *Counter
	// Duration observes request latency in seconds. Labels: method, route.
	Duration *Histogram
	// Routes is the number of registered operations.
	Routes *Gauge
}

// NewHTTPMetrics registers the request metrics on r.
func NewHTTPMetrics(r *Registry) *HTTPMetrics {
	return &HTTPMetrics{
		Requests: r.NewCounter(
			"restmock_requests_total",
			"Total number of requests served",
			"method", "route", "status",
		),
		Duration: r.NewHistogram(
			"restmock_request_duration_seconds",
			"Request duration in seconds",
			DefaultBuckets,
			"method", "route",
		),
		Routes: r.NewGauge(
			"restmock_routes",
			"Number of registered operations",
		),
	}
}

// Observe records one served request.
func (m *HTTPMetrics) Observe(method, route, status string, seconds float64) {
	if vec, err := m.Requests.WithLabels(method, route, status); err == nil {
		_ = vec.Inc()
	}
	if vec, err := m.Duration.WithLabels(method, route); err == nil {
		vec.Observe(seconds)
	}
}
