// Package iface defines the narrow interfaces that let the reactor stay
// generic over connection semantics. These mirror the split the teacher
// codebase keeps in internal/interfaces: separate, dependency-free contracts
// so the high-traffic packages (here, internal/reactor) never need to import
// the concrete domain package (internal/conn) or the public root package,
// which in turn depends on them.
package iface

// Handler is the capability a Reactor needs from whatever is driving a
// connection. It replaces the BaseTcpServer/TcpServer protected-override
// hierarchy the original C++ implementation used: instead of a connection
// type inheriting from a base reactor class, the Reactor holds a Handler
// and calls back into it. State is opaque to the reactor; it is whatever
// OnAccept returned for that connection, round-tripped by the registry.
type Handler interface {
	// OnAccept is called once per accepted fd and returns the opaque state
	// the reactor should associate with that connection.
	OnAccept(fd int) (State, error)

	// OnRead is called with each chunk of newly-arrived bytes. The reactor
	// does not buffer input itself: the handler appends chunk to whatever
	// input buffer its State keeps. Returning an error closes the
	// connection.
	OnRead(state State, chunk []byte) error

	// OnWriteDrained is called after the reactor has drained whatever was
	// queued in the connection's output buffer. Implementations that
	// stream unbounded output (export seq) refill the buffer here.
	OnWriteDrained(state State) error

	// OnClose is called exactly once when a connection's fd is removed
	// from the reactor, regardless of whether the peer closed it, a read
	// or write failed, or the server is shutting down.
	OnClose(state State)
}

// State is the opaque per-connection value a Handler manufactures in
// OnAccept and the reactor threads back through every subsequent callback.
type State interface {
	// FD returns the connection's socket descriptor.
	FD() int

	// PendingOutput returns the bytes currently queued for the write path
	// and whether the handler wants to keep the fd registered for write
	// readiness (the teacher's TagState is the I/O analogue of this:
	// ConnectionState.readyWrite here plays the same "who owns the next
	// syscall" role that tagStates played per-tag in the queue runner).
	PendingOutput() ([]byte, bool)

	// Consume drops the first n bytes of the buffer PendingOutput
	// returned, reflecting a successful partial or full write.
	Consume(n int)
}

// Logger is the minimal logging surface internal packages depend on,
// satisfied structurally by *logging.Logger without an import cycle.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Observer receives reactor-level events for metrics collection. It is
// satisfied structurally by the root package's *Metrics-backed observer.
type Observer interface {
	ObserveAccept()
	ObserveClose()
	ObserveBytesRead(n int)
	ObserveBytesWritten(n int)
	ObserveRowsEmitted(n int)
	ObserveProtocolError(message string)
}

// NoOpObserver implements Observer with no-op methods for callers that
// don't care about metrics.
type NoOpObserver struct{}

func (NoOpObserver) ObserveAccept()                 {}
func (NoOpObserver) ObserveClose()                  {}
func (NoOpObserver) ObserveBytesRead(int)           {}
func (NoOpObserver) ObserveBytesWritten(int)        {}
func (NoOpObserver) ObserveRowsEmitted(int)         {}
func (NoOpObserver) ObserveProtocolError(string)    {}

var _ Observer = NoOpObserver{}
