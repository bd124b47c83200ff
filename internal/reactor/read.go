package reactor

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/archatas/seqreactor/internal/constants"
	"github.com/archatas/seqreactor/internal/iface"
	"github.com/archatas/seqreactor/internal/poller"
	"github.com/archatas/seqreactor/internal/rerrors"
)

// readConn drains a readable connection fd: repeated bounded reads into a
// pooled chunk buffer until the call would block or an error/EOF closes
// it, feeding every chunk to the handler as it arrives.
func (w *Worker) readConn(fd int) {
	state, ok := w.stateFor(fd)
	if !ok {
		return
	}

	chunk := bufGet(constants.ReadChunkSize)
	defer bufPut(chunk)

	for {
		n, err := unix.Read(fd, chunk)
		if n > 0 {
			w.observer.ObserveBytesRead(n)
			if herr := w.handler.OnRead(state, chunk[:n]); herr != nil {
				if w.logger != nil {
					w.logger.Errorf("reactor: OnRead(%d): %v", fd, herr)
				}
				w.closeConn(fd)
				return
			}
		}
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				break
			}
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if w.logger != nil {
				w.logger.Errorf("reactor: %v", rerrors.WrapError("read", fd, err))
			}
			w.closeConn(fd)
			return
		}
		if n == 0 {
			w.closeConn(fd)
			return
		}
	}

	w.rearmForWriteIfNeeded(fd, state)
}

// rearmForWriteIfNeeded re-registers fd for read+write readiness if the
// handler has queued output since the last arm, per the read path's
// closing step in the protocol's event handling order.
func (w *Worker) rearmForWriteIfNeeded(fd int, state iface.State) {
	out, readyWrite := state.PendingOutput()
	if readyWrite && len(out) > 0 {
		if err := w.poll.Modify(fd, poller.Readable|poller.Writable); err != nil && w.logger != nil {
			w.logger.Errorf("reactor: rearm fd %d for write: %v", fd, err)
		}
	}
}
