package conn

import (
	"bytes"
	"strings"

	"github.com/archatas/seqreactor/internal/constants"
	"github.com/archatas/seqreactor/internal/iface"
)

// CommandHandler parses line-framed commands out of a ConnectionState's
// input buffer, mutates the state, and formats responses into its output
// buffer. Holds no per-connection state beyond an observer, so a single
// CommandHandler is shared across every connection.
type CommandHandler struct {
	obs iface.Observer
}

// NewCommandHandler returns a CommandHandler that discards observability
// events. Used directly by callers that don't need metrics (tests, the
// root package's aliasing constructor).
func NewCommandHandler() *CommandHandler {
	return &CommandHandler{obs: iface.NoOpObserver{}}
}

// HandleInput drains every complete LF-terminated line currently in
// state's input buffer, dispatching each as a command. Partial trailing
// input is left buffered for the next read.
func (h *CommandHandler) HandleInput(state *ConnectionState) {
	for {
		idx := bytes.IndexByte(state.inBuf, '\n')
		if idx < 0 {
			return
		}
		cmd := string(state.inBuf[:idx])
		state.ConsumeIn(idx + 1)
		h.dispatch(state, cmd)
	}
}

func (h *CommandHandler) dispatch(state *ConnectionState, cmd string) {
	switch {
	case strings.HasPrefix(cmd, "seq"):
		if err := state.factory.Create(cmd); err != nil {
			state.AppendOut("ERR: " + err.Error() + "\r\n")
			h.obs.ObserveProtocolError(err.Error())
		} else {
			state.AppendOut("OK\r\n")
		}
	case strings.HasPrefix(cmd, "export seq"):
		state.AppendOut(state.factory.Row() + "\r\n")
		state.SetExportSeq(true)
		h.obs.ObserveRowsEmitted(1)
	default:
		state.AppendOut("ERR: " + ErrUnknownCommand.Message + "\r\n")
		h.obs.ObserveProtocolError(ErrUnknownCommand.Message)
	}
	state.SetReadyWrite(true)
}

// Refill appends up to constants.RefillCap fresh rows to state's output
// buffer while export_seq is active, stopping early once out_buf has grown
// past the soft cap or a row comes back empty (which also clears
// export_seq for the remainder of the connection, per the protocol: once
// cleared it is not re-armed except by a fresh "export seq" command).
func (h *CommandHandler) Refill(state *ConnectionState) {
	if !state.exportSeq {
		return
	}
	for i := 0; i < constants.RefillCap; i++ {
		if state.OutLen() > constants.OutBufSoftCap {
			return
		}
		row := state.factory.Row()
		if row == "" {
			state.SetExportSeq(false)
			return
		}
		state.AppendOut(row + "\r\n")
		h.obs.ObserveRowsEmitted(1)
	}
}
