package seqreactor

import "github.com/archatas/seqreactor/internal/conn"

// ConnectionState is the per-connection state a reactor worker mutates
// while handling one client fd.
type ConnectionState = conn.ConnectionState

// NewConnectionState allocates connection state for a freshly accepted fd.
func NewConnectionState(fd int) *ConnectionState {
	return conn.NewConnectionState(fd)
}
