package engine

import (
	"net/http"
	"strconv"
	"time"
)

// instrument records request count and latency for route, the OpenAPI path
// template, so label cardinality stays bounded by the document.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)
		s.metrics.Observe(r.Method, route, strconv.Itoa(rec.status), time.Since(start).Seconds())
	})
}
