package seqreactor

import (
	"testing"
	"time"
)

func TestMetricsObserverRecordsEvents(t *testing.T) {
	m := NewMetrics()
	obs := NewMetricsObserver(m)

	obs.ObserveAccept()
	obs.ObserveAccept()
	obs.ObserveClose()
	obs.ObserveBytesRead(100)
	obs.ObserveBytesWritten(200)
	obs.ObserveRowsEmitted(5)
	obs.ObserveProtocolError("bad request")

	snap := m.Snapshot()
	if snap.Accepts != 2 {
		t.Fatalf("Accepts = %d, want 2", snap.Accepts)
	}
	if snap.Closes != 1 {
		t.Fatalf("Closes = %d, want 1", snap.Closes)
	}
	if snap.OpenConns != 1 {
		t.Fatalf("OpenConns = %d, want 1", snap.OpenConns)
	}
	if snap.BytesRead != 100 || snap.BytesWritten != 200 {
		t.Fatalf("byte counters = %d/%d", snap.BytesRead, snap.BytesWritten)
	}
	if snap.ProtocolErrors != 1 {
		t.Fatalf("ProtocolErrors = %d, want 1", snap.ProtocolErrors)
	}
}

func TestMetricsConnLifetimeAverage(t *testing.T) {
	m := NewMetrics()
	m.RecordConnLifetime(10 * time.Millisecond)
	m.RecordConnLifetime(30 * time.Millisecond)

	snap := m.Snapshot()
	want := uint64(20 * time.Millisecond)
	if snap.AvgConnLifetimeNs != want {
		t.Fatalf("AvgConnLifetimeNs = %d, want %d", snap.AvgConnLifetimeNs, want)
	}
}

func TestMetricsResetZeroesCounters(t *testing.T) {
	m := NewMetrics()
	m.Accepts.Add(5)
	m.Reset()
	if m.Accepts.Load() != 0 {
		t.Fatalf("expected Accepts reset to 0")
	}
}

func TestNoOpObserverSatisfiesObserver(t *testing.T) {
	var o Observer = NoOpObserver{}
	o.ObserveAccept()
	o.ObserveClose()
	o.ObserveBytesRead(1)
	o.ObserveBytesWritten(1)
	o.ObserveRowsEmitted(1)
	o.ObserveProtocolError("x")
}
