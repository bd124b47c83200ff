package seqreactor

import (
	"github.com/archatas/seqreactor/internal/conn"
	"github.com/archatas/seqreactor/internal/logging"
	"github.com/archatas/seqreactor/internal/server"
)

// Options configures a Server.
type Options struct {
	// Workers is the number of reactor workers to spawn. Zero means
	// runtime.NumCPU().
	Workers int

	// Logger receives operational log lines. Defaults to
	// logging.Default(), which satisfies iface.Logger directly.
	Logger *logging.Logger

	// Observer receives metrics events. Defaults to NoOpObserver.
	Observer Observer
}

// Server is the top-level lifecycle object: bind, listen, register, run,
// shutdown. It is the composition root that wires the sequence-protocol
// Handler into the reactor, since internal/reactor and internal/server
// never import internal/conn directly.
type Server struct {
	inner *server.Server
}

// NewServer creates a Server ready to Start.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	observer := opts.Observer
	if observer == nil {
		observer = NoOpObserver{}
	}
	handler := conn.NewSeqHandler(observer)

	inner := server.New(handler, server.Options{
		Workers:  opts.Workers,
		Logger:   logger,
		Observer: observer,
	})
	return &Server{inner: inner}
}

// Start binds host:port, spawns the configured worker pool, and blocks
// until every worker exits (either because Stop was called or a fatal
// bind/listen error occurred). Returns a non-nil error only for a fatal
// setup failure; clean shutdown via Stop returns nil.
func (s *Server) Start(host string, port int) error {
	s.inner.SetAddr(host, port)
	return s.inner.Start()
}

// Stop requests graceful shutdown; workers observe it on their next timed
// poll wake and Start returns once they have all exited.
func (s *Server) Stop() {
	s.inner.Stop()
}

// ConnCount returns the number of currently open connections.
func (s *Server) ConnCount() int {
	return s.inner.ConnCount()
}
