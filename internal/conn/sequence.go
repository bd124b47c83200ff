// Package conn implements the sequence protocol: the per-connection state
// machine, command dispatch, and the Handler that wires both into the
// reactor via internal/iface.
package conn

import "sync/atomic"

// Sequence is an atomic monotone counter advancing by a fixed step on every
// next() call. The zero value is not usable; construct with NewSequence.
type Sequence struct {
	counter uint64
	step    uint64
}

// NewSequence creates a Sequence that starts at start and advances by step.
// Callers are expected to have already validated start != 0 and step != 0;
// NewSequence itself does not enforce it so it stays usable in tests that
// want to exercise edge values.
func NewSequence(start, step uint64) *Sequence {
	return &Sequence{counter: start, step: step}
}

// Next atomically returns the current counter value and advances it by
// step, wrapping modulo 2^64 via unsigned integer overflow. The first call
// returns start.
func (s *Sequence) Next() uint64 {
	return atomic.AddUint64(&s.counter, s.step) - s.step
}
