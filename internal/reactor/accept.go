package reactor

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/archatas/seqreactor/internal/poller"
	"github.com/archatas/seqreactor/internal/rerrors"
)

// acceptLoop drains the listen backlog: accept4 until EAGAIN/EWOULDBLOCK,
// per edge-triggered discipline. EINTR is retried; any other error aborts
// just this accept attempt, not the worker.
func (w *Worker) acceptLoop() {
	for {
		fd, _, err := unix.Accept4(w.listenFD, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if errors.Is(err, unix.EAGAIN) {
				return
			}
			if w.logger != nil {
				werr := rerrors.WrapError("accept", -1, err)
				werr.Code = rerrors.ErrCodeAcceptFailed
				w.logger.Errorf("reactor: %v", werr)
			}
			return
		}

		state, err := w.handler.OnAccept(fd)
		if err != nil {
			if w.logger != nil {
				w.logger.Errorf("reactor: OnAccept(%d): %v", fd, err)
			}
			unix.Close(fd)
			continue
		}

		w.registry.Store(fd, state)
		w.ownedFDs[fd] = struct{}{}
		if err := w.poll.Add(fd, poller.Readable); err != nil {
			if w.logger != nil {
				w.logger.Errorf("reactor: register fd %d: %v", fd, err)
			}
			w.closeConn(fd)
			continue
		}
	}
}
