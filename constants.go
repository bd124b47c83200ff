package seqreactor

import "github.com/archatas/seqreactor/internal/constants"

// Re-export the protocol's tunables for callers that want to reference
// them without an internal import.
const (
	MinSequenceID             = constants.MinSequenceID
	MaxSequenceID             = constants.MaxSequenceID
	MaxSequencesPerConnection = constants.MaxSequencesPerConnection

	InitialInBufCapacity  = constants.InitialInBufCapacity
	InitialOutBufCapacity = constants.InitialOutBufCapacity
	ReadChunkSize         = constants.ReadChunkSize
	OutBufSoftCap         = constants.OutBufSoftCap

	MaxEvents     = constants.MaxEvents
	RefillCap     = constants.RefillCap
	ListenBacklog = constants.ListenBacklog
	PollTimeout   = constants.PollTimeout

	DefaultHost = constants.DefaultHost
	DefaultPort = constants.DefaultPort
)
