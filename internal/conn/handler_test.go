package conn

import (
	"strconv"
	"testing"

	"github.com/archatas/seqreactor/internal/iface"
)

type countingObserver struct {
	accepts, closes, rows, errs int
}

func (o *countingObserver) ObserveAccept()                 { o.accepts++ }
func (o *countingObserver) ObserveClose()                  { o.closes++ }
func (o *countingObserver) ObserveBytesRead(int)            {}
func (o *countingObserver) ObserveBytesWritten(int)         {}
func (o *countingObserver) ObserveRowsEmitted(int)          { o.rows++ }
func (o *countingObserver) ObserveProtocolError(string)     { o.errs++ }

func TestSeqHandlerLifecycle(t *testing.T) {
	obs := &countingObserver{}
	h := NewSeqHandler(obs)

	state, err := h.OnAccept(7)
	if err != nil {
		t.Fatalf("OnAccept: %v", err)
	}
	if state.FD() != 7 {
		t.Fatalf("FD() = %d, want 7", state.FD())
	}

	if err := h.OnRead(state, []byte("seq1 1 1\nexport seq\n")); err != nil {
		t.Fatalf("OnRead: %v", err)
	}

	out, readyWrite := state.PendingOutput()
	if string(out) != "OK\r\n1\r\n" {
		t.Fatalf("pending output = %q", out)
	}
	if !readyWrite {
		t.Fatalf("expected readyWrite true")
	}

	state.Consume(len(out))
	if err := h.OnWriteDrained(state); err != nil {
		t.Fatalf("OnWriteDrained: %v", err)
	}
	out, _ = state.PendingOutput()
	wantRefill := refillRows(func(i int) string { return strconv.Itoa(2 + i) })
	if string(out) != wantRefill {
		t.Fatalf("refilled output = %q, want %q", out, wantRefill)
	}

	h.OnClose(state)
	if obs.accepts != 1 || obs.closes != 1 || obs.rows == 0 {
		t.Fatalf("unexpected observer counts: %+v", obs)
	}
}

func TestSeqHandlerProtocolErrorObserved(t *testing.T) {
	obs := &countingObserver{}
	h := NewSeqHandler(obs)
	state, _ := h.OnAccept(1)
	if err := h.OnRead(state, []byte("bogus\n")); err != nil {
		t.Fatalf("OnRead: %v", err)
	}
	if obs.errs != 1 {
		t.Fatalf("errs = %d, want 1", obs.errs)
	}
}

var _ iface.State = (*ConnectionState)(nil)
