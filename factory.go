package seqreactor

import "github.com/archatas/seqreactor/internal/conn"

// SequenceFactory holds the sequences registered on one connection.
type SequenceFactory = conn.SequenceFactory

// NewSequenceFactory returns an empty SequenceFactory.
func NewSequenceFactory() *SequenceFactory {
	return conn.NewSequenceFactory()
}
