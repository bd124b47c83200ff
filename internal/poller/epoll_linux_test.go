//go:build linux
// +build linux

package poller

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func socketPair(t *testing.T) (a, b int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	if err := unix.SetNonblock(fds[0], true); err != nil {
		t.Fatalf("setnonblock: %v", err)
	}
	if err := unix.SetNonblock(fds[1], true); err != nil {
		t.Fatalf("setnonblock: %v", err)
	}
	return fds[0], fds[1]
}

func TestEpollAddAndWaitReadable(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	a, b := socketPair(t)
	defer unix.Close(a)
	defer unix.Close(b)

	if err := p.Add(a, Readable); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, err := unix.Write(b, []byte("hi")); err != nil {
		t.Fatalf("write: %v", err)
	}

	events, err := p.Wait(make([]Event, 0, 16), time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(events) != 1 || events[0].FD != a || !events[0].Readable {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestEpollWaitTimesOutWhenIdle(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	events, err := p.Wait(make([]Event, 0, 16), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %+v", events)
	}
}

func TestEpollRemoveIsIdempotent(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	a, b := socketPair(t)
	defer unix.Close(a)
	defer unix.Close(b)

	if err := p.Add(a, Readable); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := p.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := p.Remove(a); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}

func TestEpollModifyAddsWriteInterest(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	a, b := socketPair(t)
	defer unix.Close(a)
	defer unix.Close(b)

	if err := p.Add(a, Readable); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := p.Modify(a, Readable|Writable); err != nil {
		t.Fatalf("Modify: %v", err)
	}

	events, err := p.Wait(make([]Event, 0, 16), time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	found := false
	for _, e := range events {
		if e.FD == a && e.Writable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected writable event for fd %d after Modify, got %+v", a, events)
	}
}
