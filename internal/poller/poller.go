// Package poller provides the readiness multiplexer the reactor blocks on.
// The interface is deliberately narrow: register/modify/remove an fd for a
// set of interests, and wait for a batch of ready events. The real
// implementation wraps Linux epoll; non-Linux builds get a stub that
// returns ErrUnsupportedPlatform, the same split the teacher keeps between
// its real io_uring ring and its non-giouring build stub.
package poller

import (
	"errors"
	"time"
)

// Interest is a bitmask of readiness events to watch for on an fd.
type Interest uint8

const (
	Readable Interest = 1 << iota
	Writable
)

// Event describes one readiness notification.
type Event struct {
	FD       int
	Readable bool
	Writable bool
	Error    bool
	HungUp   bool
}

// ErrUnsupportedPlatform is returned by New on platforms without a real
// poller implementation.
var ErrUnsupportedPlatform = errors.New("poller: unsupported platform")

// Poller is the readiness multiplexer contract the reactor depends on.
type Poller interface {
	// Add registers fd for the given interests, edge-triggered.
	Add(fd int, interest Interest) error

	// Modify changes fd's registered interests.
	Modify(fd int, interest Interest) error

	// Remove deregisters fd. Removing an fd that was never added, or was
	// already removed, is a no-op.
	Remove(fd int) error

	// Wait blocks up to timeout for ready events, appending them to the
	// caller-supplied buffer and returning the slice actually filled.
	// A zero-length result with a nil error means the timeout elapsed with
	// nothing ready.
	Wait(buf []Event, timeout time.Duration) ([]Event, error)

	// Close releases the poller's own fd.
	Close() error
}
