//go:build linux
// +build linux

package reactor

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/archatas/seqreactor/internal/conn"
	"github.com/archatas/seqreactor/internal/registry"
)

func newTestListener(t *testing.T) (fd int, addr string) {
	t.Helper()
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, 0)
	if err != nil {
		t.Fatalf("socket: %v", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		t.Fatalf("setsockopt: %v", err)
	}
	sa := &unix.SockaddrInet4{Port: 0}
	copy(sa.Addr[:], net.ParseIP("127.0.0.1").To4())
	if err := unix.Bind(fd, sa); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := unix.Listen(fd, 128); err != nil {
		t.Fatalf("listen: %v", err)
	}
	got, err := unix.Getsockname(fd)
	if err != nil {
		t.Fatalf("getsockname: %v", err)
	}
	port := got.(*unix.SockaddrInet4).Port
	return fd, net.JoinHostPort("127.0.0.1", itoa(port))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func startTestWorker(t *testing.T) (addr string, stop func()) {
	t.Helper()
	fd, addr := newTestListener(t)

	reg := registry.New()
	handler := conn.NewSeqHandler(nil)
	w, err := NewWorker(Config{ListenFD: fd, Handler: handler, Registry: reg})
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	return addr, func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("worker did not stop in time")
		}
	}
}

func TestWorkerSingleSequenceExport(t *testing.T) {
	addr, stop := startTestWorker(t)
	defer stop()

	c, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if _, err := c.Write([]byte("seq1 1 2\nexport seq\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bufio.NewReader(c)
	c.SetReadDeadline(time.Now().Add(2 * time.Second))

	line, err := r.ReadString('\n')
	if err != nil || line != "OK\r\n" {
		t.Fatalf("line 1 = %q, err = %v", line, err)
	}

	want := []string{"1\r\n", "3\r\n", "5\r\n", "7\r\n"}
	for i, w := range want {
		line, err := r.ReadString('\n')
		if err != nil || line != w {
			t.Fatalf("row %d = %q, want %q, err = %v", i, line, w, err)
		}
	}
}

func TestWorkerUnknownCommand(t *testing.T) {
	addr, stop := startTestWorker(t)
	defer stop()

	c, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if _, err := c.Write([]byte("bogus\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bufio.NewReader(c)
	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := r.ReadString('\n')
	if err != nil || line != "ERR: Unknown command\r\n" {
		t.Fatalf("line = %q, err = %v", line, err)
	}
}

// TestWorkerSurvivesPeerHangup checks that a client hanging up right after
// connecting leaves the worker running and able to stop cleanly (stop
// fails the test if Run does not return in time).
func TestWorkerSurvivesPeerHangup(t *testing.T) {
	addr, stop := startTestWorker(t)
	defer stop()

	c, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	c.Close()

	time.Sleep(100 * time.Millisecond)
}
