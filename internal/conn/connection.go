package conn

import "github.com/archatas/seqreactor/internal/constants"

// ConnectionState is the per-connection state a reactor worker mutates
// while handling one fd. Exactly one exists per open client fd; it is
// created on accept and discarded on close. Never touched by more than one
// worker at a time.
type ConnectionState struct {
	fd int

	inBuf  []byte
	outBuf []byte

	factory *SequenceFactory

	readyWrite bool
	exportSeq  bool
}

// NewConnectionState allocates connection state for a freshly accepted fd.
func NewConnectionState(fd int) *ConnectionState {
	return &ConnectionState{
		fd:      fd,
		inBuf:   make([]byte, 0, constants.InitialInBufCapacity),
		outBuf:  make([]byte, 0, constants.InitialOutBufCapacity),
		factory: NewSequenceFactory(),
	}
}

// FD implements iface.State.
func (c *ConnectionState) FD() int { return c.fd }

// PendingOutput implements iface.State: it returns the bytes currently
// queued for write and whether the fd should stay registered for write
// readiness after they drain.
func (c *ConnectionState) PendingOutput() ([]byte, bool) {
	return c.outBuf, c.readyWrite
}

// Consume implements iface.State, dropping the first n bytes of outBuf
// after a successful (possibly partial) write.
func (c *ConnectionState) Consume(n int) {
	if n >= len(c.outBuf) {
		c.outBuf = c.outBuf[:0]
		return
	}
	c.outBuf = c.outBuf[:copy(c.outBuf, c.outBuf[n:])]
}

// AppendIn appends newly read bytes to the input buffer.
func (c *ConnectionState) AppendIn(b []byte) {
	c.inBuf = append(c.inBuf, b...)
}

// ConsumeIn drops the first n bytes of the input buffer, called after the
// command handler has extracted a complete line.
func (c *ConnectionState) ConsumeIn(n int) {
	if n >= len(c.inBuf) {
		c.inBuf = c.inBuf[:0]
		return
	}
	c.inBuf = c.inBuf[:copy(c.inBuf, c.inBuf[n:])]
}

// AppendOut appends s to the output buffer.
func (c *ConnectionState) AppendOut(s string) {
	c.outBuf = append(c.outBuf, s...)
}

// OutLen reports the number of bytes currently queued for write.
func (c *ConnectionState) OutLen() int { return len(c.outBuf) }

// ExportSeq reports whether continuous row streaming is active.
func (c *ConnectionState) ExportSeq() bool { return c.exportSeq }

// SetExportSeq sets or clears continuous row streaming.
func (c *ConnectionState) SetExportSeq(v bool) { c.exportSeq = v }

// ReadyWrite reports whether the fd should be registered for write
// readiness.
func (c *ConnectionState) ReadyWrite() bool { return c.readyWrite }

// SetReadyWrite sets or clears the write-readiness flag.
func (c *ConnectionState) SetReadyWrite(v bool) { c.readyWrite = v }

// Factory returns the connection's sequence factory.
func (c *ConnectionState) Factory() *SequenceFactory { return c.factory }
