package conn

import (
	"github.com/archatas/seqreactor/internal/iface"
)

// SeqHandler implements iface.Handler for the sequence protocol. It has no
// state of its own beyond a CommandHandler; all per-connection state lives
// in the ConnectionState values it hands back from OnAccept.
type SeqHandler struct {
	cmd *CommandHandler
	obs iface.Observer
}

// NewSeqHandler returns a SeqHandler. obs may be nil, in which case events
// are discarded via iface.NoOpObserver.
func NewSeqHandler(obs iface.Observer) *SeqHandler {
	if obs == nil {
		obs = iface.NoOpObserver{}
	}
	return &SeqHandler{cmd: &CommandHandler{obs: obs}, obs: obs}
}

// OnAccept implements iface.Handler.
func (h *SeqHandler) OnAccept(fd int) (iface.State, error) {
	h.obs.ObserveAccept()
	return NewConnectionState(fd), nil
}

// OnRead implements iface.Handler: it appends chunk to the connection's
// input buffer and runs the command dispatch loop. The reactor already
// accounts the raw bytes read, so this does not. Per-command
// rows-emitted/protocol-error accounting happens inside CommandHandler,
// where each dispatched command's outcome is known individually instead of
// inferred from a whole batch of output.
func (h *SeqHandler) OnRead(state iface.State, chunk []byte) error {
	c := state.(*ConnectionState)
	c.AppendIn(chunk)
	h.cmd.HandleInput(c)
	return nil
}

// OnWriteDrained implements iface.Handler, refilling out_buf with fresh
// rows while export_seq is active.
func (h *SeqHandler) OnWriteDrained(state iface.State) error {
	c := state.(*ConnectionState)
	h.cmd.Refill(c)
	if !c.ExportSeq() && c.OutLen() == 0 {
		c.SetReadyWrite(false)
	}
	return nil
}

// OnClose implements iface.Handler.
func (h *SeqHandler) OnClose(state iface.State) {
	h.obs.ObserveClose()
}

var _ iface.Handler = (*SeqHandler)(nil)
