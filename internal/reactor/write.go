package reactor

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/archatas/seqreactor/internal/poller"
	"github.com/archatas/seqreactor/internal/rerrors"
)

// writeConn drains a writable connection fd's pending output. Each time
// out_buf empties it calls the handler's OnWriteDrained, which refills it
// while export_seq is active; the drain-then-refill cycle repeats until a
// write would block or the handler leaves out_buf empty with no further
// interest in writing, at which point the fd is re-armed for read-only.
func (w *Worker) writeConn(fd int) {
	state, ok := w.stateFor(fd)
	if !ok {
		return
	}

	for {
		out, _ := state.PendingOutput()
		for len(out) > 0 {
			n, err := unix.Write(fd, out)
			if n > 0 {
				w.observer.ObserveBytesWritten(n)
				state.Consume(n)
				out, _ = state.PendingOutput()
			}
			if err != nil {
				if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
					return
				}
				if errors.Is(err, unix.EINTR) {
					continue
				}
				if w.logger != nil {
					w.logger.Errorf("reactor: %v", rerrors.WrapError("write", fd, err))
				}
				w.closeConn(fd)
				return
			}
		}

		if err := w.handler.OnWriteDrained(state); err != nil {
			if w.logger != nil {
				w.logger.Errorf("reactor: OnWriteDrained(%d): %v", fd, err)
			}
			w.closeConn(fd)
			return
		}

		out, readyWrite := state.PendingOutput()
		if len(out) == 0 {
			if !readyWrite {
				if err := w.poll.Modify(fd, poller.Readable); err != nil && w.logger != nil {
					w.logger.Errorf("reactor: rearm fd %d for read-only: %v", fd, err)
				}
			}
			return
		}
	}
}
