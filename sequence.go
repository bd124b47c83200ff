package seqreactor

import "github.com/archatas/seqreactor/internal/conn"

// Sequence is an atomic monotone 64-bit counter advancing by a fixed step
// on every Next call.
type Sequence = conn.Sequence

// NewSequence creates a Sequence starting at start and advancing by step.
func NewSequence(start, step uint64) *Sequence {
	return conn.NewSequence(start, step)
}
