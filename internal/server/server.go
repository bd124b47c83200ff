// Package server implements the top-level bind -> listen -> register ->
// run -> shutdown lifecycle, wiring reactor workers to listening sockets.
// Grounded on the teacher's CreateAndServe/StopAndDelete lifecycle in
// backend.go: create resources, start workers before declaring ready,
// and join every worker on shutdown.
package server

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/archatas/seqreactor/internal/constants"
	"github.com/archatas/seqreactor/internal/iface"
	"github.com/archatas/seqreactor/internal/reactor"
	"github.com/archatas/seqreactor/internal/registry"
)

// Options configures a Server.
type Options struct {
	// Host and Port are the bind address. Host defaults to
	// constants.DefaultHost, Port to constants.DefaultPort.
	Host string
	Port int

	// Workers is the number of reactor workers to spawn, each with its
	// own SO_REUSEPORT listening socket. Zero means
	// runtime.NumCPU(), with a floor of 1.
	Workers int

	Logger   iface.Logger
	Observer iface.Observer
}

func (o Options) workerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return n
}

// Server owns the listening sockets and reactor workers for one running
// instance of the service.
type Server struct {
	opts     Options
	handler  iface.Handler
	registry *registry.Registry

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New returns a Server that will dispatch accepted connections to handler.
func New(handler iface.Handler, opts Options) *Server {
	if opts.Host == "" {
		opts.Host = constants.DefaultHost
	}
	if opts.Port == 0 {
		opts.Port = constants.DefaultPort
	}
	return &Server{
		opts:     opts,
		handler:  handler,
		registry: registry.New(),
	}
}

// SetAddr overrides the bind address before Start is called.
func (s *Server) SetAddr(host string, port int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Host = host
	s.opts.Port = port
}

// Start binds opts.Workers duplicate listening sockets (SO_REUSEPORT) on
// host:port, spawns one reactor worker per socket, and blocks until every
// worker exits (either from an error or from Stop being called). Per the
// protocol's server lifecycle, Start itself joins all workers before
// returning.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server: already running")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true
	s.mu.Unlock()

	n := s.opts.workerCount()
	workers := make([]*reactor.Worker, 0, n)
	for i := 0; i < n; i++ {
		fd, err := bindListener(s.opts.Host, s.opts.Port)
		if err != nil {
			cancel()
			// Run on the cancelled ctx shuts each already-created worker
			// down at once, closing its poller and listening socket.
			for _, w := range workers {
				w.Run(ctx)
			}
			return fmt.Errorf("server: bind worker %d: %w", i, err)
		}
		w, err := reactor.NewWorker(reactor.Config{
			ListenFD: fd,
			Handler:  s.handler,
			Registry: s.registry,
			Observer: s.opts.Observer,
			Logger:   s.opts.Logger,
		})
		if err != nil {
			cancel()
			return fmt.Errorf("server: start worker %d: %w", i, err)
		}
		workers = append(workers, w)
	}

	if s.opts.Logger != nil {
		s.opts.Logger.Infof("listening on %s:%d with %d workers", s.opts.Host, s.opts.Port, n)
	}

	s.wg.Add(len(workers))
	for _, w := range workers {
		w := w
		go func() {
			defer s.wg.Done()
			if err := w.Run(ctx); err != nil && s.opts.Logger != nil {
				s.opts.Logger.Errorf("worker exited: %v", err)
			}
		}()
	}

	s.wg.Wait()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return nil
}

// Stop cancels the workers' context; workers observe it on their next timed
// poll wake and exit. Stop does not itself wait for workers to finish;
// Start's caller observes that via Start's own return.
func (s *Server) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// ConnCount returns the number of currently open connections, for
// diagnostics and tests.
func (s *Server) ConnCount() int {
	return s.registry.Len()
}
