package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	seqreactor "github.com/archatas/seqreactor"
	"github.com/archatas/seqreactor/internal/logging"
)

func main() {
	var (
		host    = flag.String("host", seqreactor.DefaultHost, "bind address")
		port    = flag.Int("port", seqreactor.DefaultPort, "bind port")
		workers = flag.Int("workers", 0, "number of reactor workers (0 = runtime.NumCPU())")
		verbose = flag.Bool("v", false, "verbose output")
	)
	flag.Parse()

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logConfig)
	logging.SetDefault(logger)

	signal.Ignore(syscall.SIGPIPE)

	metrics := seqreactor.NewMetrics()
	observer := seqreactor.NewMetricsObserver(metrics)

	srv := seqreactor.NewServer(seqreactor.Options{
		Workers:  *workers,
		Logger:   logger,
		Observer: observer,
	})

	go handleStackDumpSignal(logger)

	done := make(chan error, 1)
	go func() { done <- srv.Start(*host, *port) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
		srv.Stop()
		if err := <-done; err != nil {
			logger.Error("server exited with error", "error", err)
			os.Exit(1)
		}
	case err := <-done:
		if err != nil {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}

	snap := metrics.Snapshot()
	logger.Info("shutdown complete",
		"accepts", snap.Accepts,
		"closes", snap.Closes,
		"bytes_read", snap.BytesRead,
		"bytes_written", snap.BytesWritten)
	os.Exit(0)
}

// handleStackDumpSignal dumps every goroutine's stack to stderr and a
// timestamped file on SIGUSR1, useful for diagnosing a stuck worker
// without restarting the process.
func handleStackDumpSignal(logger *logging.Logger) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	for range ch {
		buf := make([]byte, 1<<20)
		n := runtime.Stack(buf, true)
		fmt.Fprintf(os.Stderr, "\n=== GOROUTINE STACK DUMP ===\n%s\n", buf[:n])

		filename := fmt.Sprintf("seqreactor-stacks-%d.txt", time.Now().Unix())
		if f, err := os.Create(filename); err == nil {
			fmt.Fprintf(f, "Goroutine stack dump at %s\n", time.Now().Format(time.RFC3339))
			f.Write(buf[:n])
			fmt.Fprintf(f, "\n\n=== GOROUTINE PROFILE ===\n")
			pprof.Lookup("goroutine").WriteTo(f, 2)
			f.Close()
			logger.Info("stack dump written to file", "file", filename)
		}
	}
}
