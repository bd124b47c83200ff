// Package reactor implements the edge-triggered, non-blocking event loop
// that drives accept/read/write/close dispatch for one worker. Grounded on
// the teacher's queue.Runner: one Worker owns one readiness multiplexer and
// runs its ioLoop-equivalent until its context is cancelled, the same
// per-worker ownership shape the teacher uses per queue.
//
// Unlike the teacher's single shared io_uring per device, each Worker here
// owns its own listening socket (bound with SO_REUSEPORT by the caller) and
// its own poller instance, so two workers never contend on the same fd:
// the kernel load-balances accepted connections across the duplicated
// listening sockets instead. This is the per-worker-multiplexer sharding
// the protocol design allows as an alternative to one shared multiplexer
// and a single registry lock.
package reactor

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/archatas/seqreactor/internal/bufpool"
	"github.com/archatas/seqreactor/internal/constants"
	"github.com/archatas/seqreactor/internal/iface"
	"github.com/archatas/seqreactor/internal/poller"
	"github.com/archatas/seqreactor/internal/registry"
	"github.com/archatas/seqreactor/internal/rerrors"
)

// Config configures a Worker.
type Config struct {
	ListenFD int
	Handler  iface.Handler
	Registry *registry.Registry
	Observer iface.Observer
	Logger   iface.Logger
}

// Worker runs one reactor event loop: wait for readiness, dispatch
// accept/read/write/close, repeat until its context is done.
//
// ownedFDs tracks exactly the connection fds this worker accepted. It is
// touched only from the Run goroutine (acceptLoop adds, closeConn
// removes, shutdown ranges it), so it needs no lock of its own. The
// registry is shared across every worker for diagnostics (Len/Range), but
// a worker must never close an fd it does not own: another worker may
// still be mid-dispatch on that fd, and closing it here would both
// double-close the socket and hand OnClose a ConnectionState still being
// mutated by its owning worker's goroutine.
type Worker struct {
	listenFD int
	handler  iface.Handler
	registry *registry.Registry
	observer iface.Observer
	logger   iface.Logger
	poll     poller.Poller
	ownedFDs map[int]struct{}
}

// NewWorker creates a Worker bound to listenFD, with its own poller
// instance, and registers the listener for edge-triggered readable events.
func NewWorker(cfg Config) (*Worker, error) {
	if cfg.Observer == nil {
		cfg.Observer = iface.NoOpObserver{}
	}
	p, err := poller.New()
	if err != nil {
		werr := rerrors.WrapError("create poller", -1, err)
		werr.Code = rerrors.ErrCodePollerFailed
		return nil, werr
	}
	w := &Worker{
		listenFD: cfg.ListenFD,
		handler:  cfg.Handler,
		registry: cfg.Registry,
		observer: cfg.Observer,
		logger:   cfg.Logger,
		poll:     p,
		ownedFDs: make(map[int]struct{}),
	}
	if err := w.poll.Add(cfg.ListenFD, poller.Readable); err != nil {
		p.Close()
		return nil, fmt.Errorf("reactor: register listener: %w", err)
	}
	return w, nil
}

// Run blocks, dispatching readiness events until ctx is cancelled. On
// return every fd this worker owns has been closed and removed from the
// registry.
func (w *Worker) Run(ctx context.Context) error {
	events := make([]poller.Event, 0, constants.MaxEvents)
	for {
		select {
		case <-ctx.Done():
			w.shutdown()
			return nil
		default:
		}

		ready, err := w.poll.Wait(events, constants.PollTimeout)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if w.logger != nil {
				w.logger.Errorf("reactor: poll wait: %v", err)
			}
			continue
		}

		for _, ev := range ready {
			w.dispatch(ev)
		}
	}
}

// dispatch implements the per-event handling order: error/hangup first,
// then listener readability (accept), then read, then write.
func (w *Worker) dispatch(ev poller.Event) {
	if ev.Error || ev.HungUp {
		w.closeConn(ev.FD)
		return
	}
	if ev.Readable && ev.FD == w.listenFD {
		w.acceptLoop()
		return
	}
	if ev.Readable {
		w.readConn(ev.FD)
		return
	}
	if ev.Writable {
		w.writeConn(ev.FD)
	}
}

// shutdown closes every connection fd this worker accepted (never fds
// owned by a peer worker) along with its poller and listener. Idempotent.
func (w *Worker) shutdown() {
	fds := make([]int, 0, len(w.ownedFDs))
	for fd := range w.ownedFDs {
		fds = append(fds, fd)
	}
	for _, fd := range fds {
		w.closeConn(fd)
	}
	w.poll.Close()
	unix.Close(w.listenFD)
}

func (w *Worker) stateFor(fd int) (iface.State, bool) {
	v, ok := w.registry.Load(fd)
	if !ok {
		return nil, false
	}
	state, ok := v.(iface.State)
	return state, ok
}

// bufGet/bufPut are the reactor's only touch points on bufpool, isolating
// the pooled-buffer lifetime to the read path's stack-sized chunk.
func bufGet(n int) []byte  { return bufpool.Get(n) }
func bufPut(b []byte)      { bufpool.Put(b) }
