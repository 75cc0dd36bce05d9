package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// ErrDuplicateMetric is returned when registering a metric with a name that is already registered.
var ErrDuplicateMetric = errors.New("duplicate metric name")

// atomicFloat64 stores a float64 as bits for lock-free updates.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := a.bits.Load()
		if a.bits.CompareAndSwap(old, math.Float64bits(math.Float64frombits(old)+delta)) {
			return
		}
	}
}

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Collect returns all samples for exposition.
	Collect() []Sample
}

// Sample is a single exposed value.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// family holds one series per distinct label-value combination.
type family[S any] struct {
	name       string
	help       string
	labelNames []string
	newSeries  func() *S

	mu     sync.RWMutex
	series map[string]*labeled[S]
}

type labeled[S any] struct {
	labels map[string]string
	s      *S
}

func newFamily[S any](name, help string, labelNames []string, newSeries func() *S) family[S] {
	return family[S]{
		name:       name,
		help:       help,
		labelNames: labelNames,
		newSeries:  newSeries,
		series:     make(map[string]*labeled[S]),
	}
}

func (f *family[S]) Name() string { return f.name }

func (f *family[S]) Help() string { return f.help }

// get returns the series for values, creating it on first use.
func (f *family[S]) get(kind MetricType, values []string) (*S, error) {
	if len(values) != len(f.labelNames) {
		return nil, fmt.Errorf("%w: %s %s expected %d labels, got %d",
			ErrLabelCountMismatch, kind, f.name, len(f.labelNames), len(values))
	}

	key := strings.Join(values, "\x00")
	f.mu.RLock()
	l, ok := f.series[key]
	f.mu.RUnlock()
	if ok {
		return l.s, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok = f.series[key]; !ok {
		labels := make(map[string]string, len(values))
		for i, name := range f.labelNames {
			labels[name] = values[i]
		}
		l = &labeled[S]{labels: labels, s: f.newSeries()}
		f.series[key] = l
	}
	return l.s, nil
}

// each calls fn for every series in a stable order.
func (f *family[S]) each(fn func(labels map[string]string, s *S)) {
	f.mu.RLock()
	keys := make([]string, 0, len(f.series))
	for k := range f.series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	all := make([]*labeled[S], len(keys))
	for i, k := range keys {
		all[i] = f.series[k]
	}
	f.mu.RUnlock()

	for _, l := range all {
		fn(l.labels, l.s)
	}
}

// Counter is a monotonically increasing metric.
type Counter struct {
	family[atomicFloat64]
}

// Type returns the metric type.
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// WithLabels returns the CounterVec for the given label values.
func (c *Counter) WithLabels(values ...string) (*CounterVec, error) {
	v, err := c.get(MetricTypeCounter, values)
	if err != nil {
		return nil, err
	}
	return &CounterVec{v: v}, nil
}

// Inc increments an unlabeled counter by 1.
func (c *Counter) Inc() error {
	vec, err := c.WithLabels()
	if err != nil {
		return err
	}
	return vec.Inc()
}

// Collect returns all metric samples.
func (c *Counter) Collect() []Sample {
	var samples []Sample
	c.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: c.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

// CounterVec is a counter bound to one label combination.
type CounterVec struct {
	v *atomicFloat64
}

// Inc increments the counter by 1.
func (v *CounterVec) Inc() error {
	return v.Add(1)
}

// Add adds delta, which must not be negative.
func (v *CounterVec) Add(delta float64) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	v.v.Add(delta)
	return nil
}

// Gauge is a metric that can arbitrarily go up and down.
type Gauge struct {
	family[atomicFloat64]
}

// Type returns the metric type.
func (g *Gauge) Type() MetricType { return MetricTypeGauge }

// WithLabels returns the GaugeVec for the given label values.
func (g *Gauge) WithLabels(values ...string) (*GaugeVec, error) {
	v, err := g.get(MetricTypeGauge, values)
	if err != nil {
		return nil, err
	}
	return &GaugeVec{v: v}, nil
}

// Set sets an unlabeled gauge.
func (g *Gauge) Set(value float64) error {
	vec, err := g.WithLabels()
	if err != nil {
		return err
	}
	vec.Set(value)
	return nil
}

// Collect returns all metric samples.
func (g *Gauge) Collect() []Sample {
	var samples []Sample
	g.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: g.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

// GaugeVec is a gauge bound to one label combination.
type GaugeVec struct {
	v *atomicFloat64
}

// Set sets the gauge to value.
func (v *GaugeVec) Set(value float64) { v.v.Store(value) }

// Add adds delta to the gauge.
func (v *GaugeVec) Add(delta float64) { v.v.Add(delta) }

// Histogram tracks the distribution of observed values.
type Histogram struct {
	family[histogramSeries]
	buckets []float64
}

type histogramSeries struct {
	counts []atomic.Uint64 // per bucket, not cumulative
	sum    atomicFloat64
	count  atomic.Uint64
}

// Type returns the metric type.
func (h *Histogram) Type() MetricType { return MetricTypeHistogram }

// WithLabels returns the HistogramVec for the given label values.
func (h *Histogram) WithLabels(values ...string) (*HistogramVec, error) {
	s, err := h.get(MetricTypeHistogram, values)
	if err != nil {
		return nil, err
	}
	return &HistogramVec{s: s, buckets: h.buckets}, nil
}

// Collect returns bucket, sum and count samples for every series.
func (h *Histogram) Collect() []Sample {
	var samples []Sample
	h.each(func(labels map[string]string, s *histogramSeries) {
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += s.counts[i].Load()
			bucketLabels := make(map[string]string, len(labels)+1)
			for k, v := range labels {
				bucketLabels[k] = v
			}
			bucketLabels["le"] = formatFloat(bound)
			samples = append(samples, Sample{Name: h.name + "_bucket", Labels: bucketLabels, Value: float64(cumulative)})
		}
		samples = append(samples,
			Sample{Name: h.name + "_sum", Labels: labels, Value: s.sum.Load()},
			Sample{Name: h.name + "_count", Labels: labels, Value: float64(s.count.Load())},
		)
	})
	return samples
}

// HistogramVec is a histogram bound to one label combination.
type HistogramVec struct {
	s       *histogramSeries
	buckets []float64
}

// Observe records value.
func (v *HistogramVec) Observe(value float64) {
	for i, bound := range v.buckets {
		if value <= bound {
			v.s.counts[i].Add(1)
			break
		}
	}
	v.s.sum.Add(value)
	v.s.count.Add(1)
}

// Registry holds registered metrics and serves them.
type Registry struct {
	mu        sync.RWMutex
	metrics   []Metric
	names     map[string]struct{}
	onCollect []func()
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter creates and registers a counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := &Counter{family: newFamily(name, help, labels, func() *atomicFloat64 { return &atomicFloat64{} })}
	r.register(c)
	return c
}

// NewGauge creates and registers a gauge.
func (r *Registry) NewGauge(name, help string, labels ...string) *Gauge {
	g := &Gauge{family: newFamily(name, help, labels, func() *atomicFloat64 { return &atomicFloat64{} })}
	r.register(g)
	return g
}

// NewHistogram creates and registers a histogram. A +Inf bucket is added
// when buckets does not end with one.
func (r *Registry) NewHistogram(name, help string, buckets []float64, labels ...string) *Histogram {
	sorted := append([]float64(nil), buckets...)
	sort.Float64s(sorted)
	if len(sorted) == 0 || !math.IsInf(sorted[len(sorted)-1], 1) {
		sorted = append(sorted, math.Inf(1))
	}
	h := &Histogram{
		family: newFamily(name, help, labels, func() *histogramSeries {
			return &histogramSeries{counts: make([]atomic.Uint64, len(sorted))}
		}),
		buckets: sorted,
	}
	r.register(h)
	return h
}

// OnCollect registers fn to run before every scrape.
func (r *Registry) OnCollect(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCollect = append(r.onCollect, fn)
}

// register panics on a duplicate name; duplicate families produce invalid output.
func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.names[m.Name()]; exists {
		panic(fmt.Sprintf("%s: %s", ErrDuplicateMetric, m.Name()))
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// Handler returns an http.Handler that serves all metrics in text format.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_ = r.Write(w)
	})
}

// Write renders all metrics in Prometheus text format.
func (r *Registry) Write(w io.Writer) error {
	r.mu.RLock()
	hooks := append([]func(){}, r.onCollect...)
	metrics := append([]Metric(nil), r.metrics...)
	r.mu.RUnlock()

	for _, fn := range hooks {
		fn()
	}
	for _, m := range metrics {
		if err := writeMetric(w, m); err != nil {
			return err
		}
	}
	return nil
}

func writeMetric(w io.Writer, m Metric) error {
	samples := m.Collect()
	if len(samples) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# HELP %s %s\n", m.Name(), escapeHelp(m.Help()))
	fmt.Fprintf(&b, "# TYPE %s %s\n", m.Name(), m.Type())
	for _, s := range samples {
		if len(s.Labels) == 0 {
			fmt.Fprintf(&b, "%s %s\n", s.Name, formatFloat(s.Value))
			continue
		}
		fmt.Fprintf(&b, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// formatLabels renders labels sorted by name.
func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + `="` + labelEscaper.Replace(labels[k]) + `"`
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}

var (
	helpEscaper  = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
)

func escapeHelp(s string) string { return helpEscaper.Replace(s) }

// DefaultBuckets are histogram buckets for request durations in seconds.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
