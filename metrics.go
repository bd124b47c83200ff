package seqreactor

import (
	"sync/atomic"
	"time"

	"github.com/archatas/seqreactor/internal/iface"
)

// LatencyBuckets defines the connection-lifetime histogram buckets in
// nanoseconds, covering from 1ms to 1 hour with logarithmic spacing: a
// long-lived export seq subscriber looks very different from a
// one-shot seq/close client, and this range captures both.
var LatencyBuckets = []uint64{
	1_000_000,        // 1ms
	10_000_000,       // 10ms
	100_000_000,      // 100ms
	1_000_000_000,    // 1s
	10_000_000_000,   // 10s
	60_000_000_000,   // 1m
	600_000_000_000,  // 10m
	3_600_000_000_000, // 1h
}

const numLatencyBuckets = 8

// Metrics tracks operational statistics for a running server.
type Metrics struct {
	Accepts        atomic.Uint64
	Closes         atomic.Uint64
	BytesRead      atomic.Uint64
	BytesWritten   atomic.Uint64
	RowsEmitted    atomic.Uint64
	ProtocolErrors atomic.Uint64

	connLifetimeTotalNs atomic.Uint64
	connLifetimeCount   atomic.Uint64
	lifetimeBuckets     [numLatencyBuckets]atomic.Uint64

	StartTime atomic.Int64
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.StartTime.Store(time.Now().UnixNano())
	return m
}

// RecordConnLifetime records how long a connection was open, updating the
// latency-style histogram.
func (m *Metrics) RecordConnLifetime(d time.Duration) {
	ns := uint64(d.Nanoseconds())
	m.connLifetimeTotalNs.Add(ns)
	m.connLifetimeCount.Add(1)
	for i, bucket := range LatencyBuckets {
		if ns <= bucket {
			m.lifetimeBuckets[i].Add(1)
		}
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics' counters plus
// derived statistics.
type MetricsSnapshot struct {
	Accepts        uint64
	Closes         uint64
	OpenConns      uint64
	BytesRead      uint64
	BytesWritten   uint64
	RowsEmitted    uint64
	ProtocolErrors uint64

	AvgConnLifetimeNs uint64
	UptimeNs          uint64

	LifetimeHistogram [numLatencyBuckets]uint64
}

// Snapshot returns a point-in-time snapshot of the metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Accepts:        m.Accepts.Load(),
		Closes:         m.Closes.Load(),
		BytesRead:      m.BytesRead.Load(),
		BytesWritten:   m.BytesWritten.Load(),
		RowsEmitted:    m.RowsEmitted.Load(),
		ProtocolErrors: m.ProtocolErrors.Load(),
	}
	if snap.Accepts > snap.Closes {
		snap.OpenConns = snap.Accepts - snap.Closes
	}

	total := m.connLifetimeTotalNs.Load()
	count := m.connLifetimeCount.Load()
	if count > 0 {
		snap.AvgConnLifetimeNs = total / count
	}

	snap.UptimeNs = uint64(time.Now().UnixNano() - m.StartTime.Load())

	for i := 0; i < numLatencyBuckets; i++ {
		snap.LifetimeHistogram[i] = m.lifetimeBuckets[i].Load()
	}
	return snap
}

// Reset zeroes all counters; useful in tests.
func (m *Metrics) Reset() {
	m.Accepts.Store(0)
	m.Closes.Store(0)
	m.BytesRead.Store(0)
	m.BytesWritten.Store(0)
	m.RowsEmitted.Store(0)
	m.ProtocolErrors.Store(0)
	m.connLifetimeTotalNs.Store(0)
	m.connLifetimeCount.Store(0)
	for i := 0; i < numLatencyBuckets; i++ {
		m.lifetimeBuckets[i].Store(0)
	}
	m.StartTime.Store(time.Now().UnixNano())
}

// Observer is the metrics-collection capability the reactor calls into.
// Re-exported from internal/iface so callers never need to import it
// directly.
type Observer = iface.Observer

// NoOpObserver discards every event.
type NoOpObserver = iface.NoOpObserver

// MetricsObserver implements Observer, recording every event into a
// Metrics instance.
type MetricsObserver struct {
	metrics *Metrics
}

// NewMetricsObserver creates an Observer that records into m.
func NewMetricsObserver(m *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) ObserveAccept()        { o.metrics.Accepts.Add(1) }
func (o *MetricsObserver) ObserveClose()         { o.metrics.Closes.Add(1) }
func (o *MetricsObserver) ObserveBytesRead(n int) { o.metrics.BytesRead.Add(uint64(n)) }
func (o *MetricsObserver) ObserveBytesWritten(n int) {
	o.metrics.BytesWritten.Add(uint64(n))
}
func (o *MetricsObserver) ObserveRowsEmitted(n int)      { o.metrics.RowsEmitted.Add(uint64(n)) }
func (o *MetricsObserver) ObserveProtocolError(string)   { o.metrics.ProtocolErrors.Add(1) }

var _ Observer = (*MetricsObserver)(nil)
