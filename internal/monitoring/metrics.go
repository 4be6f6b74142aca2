package monitoring

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metric names emitted by MetricsObservabilityHook.
const (
	MetricStarted   = "crypton.process.started"
	MetricSucceeded = "crypton.process.succeeded"
	MetricFailed    = "crypton.process.failed"
	MetricDuration  = "crypton.process.duration"
	MetricErrors    = "crypton.errors"
)

// MetricsCollector receives counters and timings for facade operations.
type MetricsCollector interface {
	IncrementCounter(name string, tags map[string]string)
	RecordTiming(name string, duration time.Duration, tags map[string]string)

	// Flush any buffered metrics
	Flush() error
}

// NoOpMetricsCollector discards everything.
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) IncrementCounter(name string, tags map[string]string) {}
func (n *NoOpMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
}
func (n *NoOpMetricsCollector) Flush() error { return nil }

// InMemoryMetricsCollector keeps metrics in memory, mostly for tests.
type InMemoryMetricsCollector struct {
	mu       sync.RWMutex
	counters map[string]*int64
	timings  map[string][]time.Duration
}

// NewInMemoryMetricsCollector creates an empty in-memory collector.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{
		counters: make(map[string]*int64),
		timings:  make(map[string][]time.Duration),
	}
}

func (m *InMemoryMetricsCollector) IncrementCounter(name string, tags map[string]string) {
	key := seriesKey(name, tags)
	m.mu.Lock()
	counter, ok := m.counters[key]
	if !ok {
		counter = new(int64)
		m.counters[key] = counter
	}
	m.mu.Unlock()
	atomic.AddInt64(counter, 1)
}

func (m *InMemoryMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
	key := seriesKey(name, tags)
	m.mu.Lock()
	m.timings[key] = append(m.timings[key], duration)
	m.mu.Unlock()
}

func (m *InMemoryMetricsCollector) Flush() error {
	return nil
}

// Counter returns the current value of a counter series.
func (m *InMemoryMetricsCollector) Counter(name string, tags map[string]string) int64 {
	m.mu.RLock()
	counter, ok := m.counters[seriesKey(name, tags)]
	m.mu.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadInt64(counter)
}

// Timings returns a copy of the durations recorded for a series.
func (m *InMemoryMetricsCollector) Timings(name string, tags map[string]string) []time.Duration {
	key := seriesKey(name, tags)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]time.Duration(nil), m.timings[key]...)
}

// Reset clears all metrics.
func (m *InMemoryMetricsCollector) Reset() {
	m.mu.Lock()
	m.counters = make(map[string]*int64)
	m.timings = make(map[string][]time.Duration)
	m.mu.Unlock()
}

// seriesKey builds "name,k1=v1,k2=v2" with tags sorted so that equal tag sets
// always address the same series.
func seriesKey(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteString(",")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(tags[k])
	}
	return b.String()
}
