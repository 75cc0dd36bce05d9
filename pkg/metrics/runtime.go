package metrics

import (
	"runtime"
	"time"
)

// RegisterRuntime registers Go runtime gauges that refresh on every scrape.
func RegisterRuntime(r *Registry) {
	start := time.Now()

	goroutines := r.NewGauge("go_goroutines", "Number of goroutines that currently exist")
	heapAlloc := r.NewGauge("go_memstats_heap_alloc_bytes", "Number of heap bytes allocated and still in use")
	heapObjects := r.NewGauge("go_memstats_heap_objects", "Number of allocated heap objects")
	numGC := r.NewGauge("go_gc_cycles_total", "Total number of completed GC cycles")
	uptime := r.NewGauge("process_uptime_seconds", "Seconds since the metrics registry was created")
	info := r.NewGauge("go_info", "Information about the Go environment", "version")

	if vec, err := info.WithLabels(runtime.Version()); err == nil {
		vec.Set(1)
	}

	r.OnCollect(func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)

		_ = goroutines.Set(float64(runtime.NumGoroutine()))
		_ = heapAlloc.Set(float64(ms.HeapAlloc))
		_ = heapObjects.Set(float64(ms.HeapObjects))
		_ = numGC.Set(float64(ms.NumGC))
		_ = uptime.Set(time.Since(start).Seconds())
	})
}
