// Package constants collects the tunables shared by the reactor, the
// registry, and the server lifecycle.
package constants

import "time"

// Sequence protocol limits.
const (
	// MinSequenceID and MaxSequenceID bound the sequence identifiers a
	// client may register ("seq1".."seq3").
	MinSequenceID = 1
	MaxSequenceID = 3

	// MaxSequencesPerConnection is the number of slots in a
	// SequenceFactory; it equals MaxSequenceID-MinSequenceID+1 but is kept
	// as its own constant since it sizes allocations, not ID comparisons.
	MaxSequencesPerConnection = 3
)

// Buffer sizing.
const (
	// InitialInBufCapacity is the suggested starting capacity of a
	// connection's inbound byte buffer.
	InitialInBufCapacity = 1024

	// InitialOutBufCapacity is the suggested starting capacity of a
	// connection's outbound byte buffer.
	InitialOutBufCapacity = 64 * 1024

	// ReadChunkSize is the size of the stack buffer used for each
	// individual non-blocking read() call in the reactor's read path.
	ReadChunkSize = 1024

	// OutBufSoftCap is the suggested ceiling on out_buf growth while
	// export_seq is active: the reactor will not refill past this size,
	// letting a slow client's buffer drain before more rows are produced.
	OutBufSoftCap = 16 * InitialOutBufCapacity
)

// Reactor tuning.
const (
	// MaxEvents is the capacity of the per-wake event buffer passed to
	// the readiness multiplexer.
	MaxEvents = 4096

	// RefillCap bounds how many rows a single write pass appends to
	// out_buf during one export_seq refill burst, amortizing event-loop
	// latency while bounding one connection's share of CPU. The original
	// C++ implementation hardcodes 5000; the spec permits 1000-10000 and
	// this module matches the original exactly.
	RefillCap = 5000

	// ListenBacklog is the backlog passed to listen(2). The original
	// implementation hardcodes 10000.
	ListenBacklog = 10000

	// PollTimeout bounds how long a single Wait() call on the readiness
	// multiplexer may block, so that Stop() is observed promptly even
	// when no sockets are ready.
	PollTimeout = 500 * time.Millisecond
)

// DefaultHost and DefaultPort are the CLI's default bind address.
const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 4000
)
