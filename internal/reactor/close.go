package reactor

import "golang.org/x/sys/unix"

// closeConn removes fd from the poller, shuts it down, closes it, and
// removes its registry entry. Idempotent: closing an fd with no registry
// entry (already closed by a prior call) returns before any syscall, so it
// is a complete no-op.
func (w *Worker) closeConn(fd int) {
	state, ok := w.stateFor(fd)
	if !ok {
		return
	}

	w.poll.Remove(fd)
	unix.Shutdown(fd, unix.SHUT_RDWR)
	unix.Close(fd)
	w.registry.Delete(fd)
	delete(w.ownedFDs, fd)

	w.handler.OnClose(state)
}
