//go:build linux
// +build linux

package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/archatas/seqreactor/internal/conn"
)

func TestServerStartAcceptStop(t *testing.T) {
	handler := conn.NewSeqHandler(nil)
	s := New(handler, Options{Host: "127.0.0.1", Port: 0, Workers: 2})

	// Port 0 means "any free port" for net.Listen, but raw socket bind
	// with port 0 also lets the kernel pick; since Start doesn't report
	// back the chosen port for multiple duplicate sockets, this test
	// instead binds to a fixed high port unlikely to collide.
	s.opts.Port = 18420

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	time.Sleep(200 * time.Millisecond)

	c, err := net.DialTimeout("tcp", "127.0.0.1:18420", 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	c.SetDeadline(time.Now().Add(2 * time.Second))

	if _, err := c.Write([]byte("seq1 1 1\nexport seq\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := bufio.NewReader(c)
	line, err := r.ReadString('\n')
	if err != nil || line != "OK\r\n" {
		t.Fatalf("line = %q, err = %v", line, err)
	}
	line, err = r.ReadString('\n')
	if err != nil || line != "1\r\n" {
		t.Fatalf("row = %q, err = %v", line, err)
	}
	c.Close()

	s.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop in time")
	}
}
