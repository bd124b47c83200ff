package conn

import (
	"strconv"
	"strings"

	"github.com/archatas/seqreactor/internal/constants"
)

// SequenceFactory holds the sequences registered on one connection, keyed
// by id in {1,2,3}. Slots are stored positionally so Row iterates in
// ascending id order without a map and without sorting.
//
// Not safe for concurrent use: a ConnectionState (and therefore its
// factory) is only ever touched by the single reactor worker currently
// handling its fd.
type SequenceFactory struct {
	slots [constants.MaxSequencesPerConnection]*Sequence
}

// NewSequenceFactory returns an empty factory.
func NewSequenceFactory() *SequenceFactory {
	return &SequenceFactory{}
}

// Create parses line, expected to match "seq<D> <U> <U>" with a single
// space between tokens, and registers the resulting sequence. Returns a
// *ProtocolError on any validation failure; the message is exactly the
// text the wire protocol requires.
func (f *SequenceFactory) Create(line string) error {
	fields := strings.Split(line, " ")
	if len(fields) != 3 {
		return ErrBadRequest
	}
	if len(fields[0]) != len("seq")+1 || fields[0][:3] != "seq" {
		return ErrBadRequest
	}
	idDigit := fields[0][3]
	if idDigit < '0' || idDigit > '9' {
		return ErrBadRequest
	}
	id := int(idDigit - '0')

	start, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return ErrBadRequest
	}
	step, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return ErrBadRequest
	}

	if id < constants.MinSequenceID || id > constants.MaxSequenceID {
		return ErrSequenceRange
	}
	if start == 0 {
		return ErrStartInvalid
	}
	if step == 0 {
		return ErrStepInvalid
	}
	if f.slots[id-1] != nil {
		return ErrSequenceExists
	}

	f.slots[id-1] = NewSequence(start, step)
	return nil
}

// Row returns a tab-separated string of Next() values for every registered
// sequence, in ascending id order, or the empty string if none are
// registered.
func (f *SequenceFactory) Row() string {
	var b strings.Builder
	first := true
	for _, seq := range f.slots {
		if seq == nil {
			continue
		}
		if !first {
			b.WriteByte('\t')
		}
		first = false
		b.WriteString(strconv.FormatUint(seq.Next(), 10))
	}
	return b.String()
}
