package seqreactor

import "github.com/archatas/seqreactor/internal/conn"

// CommandHandler parses line-framed commands out of a ConnectionState's
// input buffer and formats responses into its output buffer.
type CommandHandler = conn.CommandHandler

// NewCommandHandler returns a CommandHandler.
func NewCommandHandler() *CommandHandler {
	return conn.NewCommandHandler()
}

// ProtocolError is a client-facing protocol violation; its message is
// written verbatim into an ERR: response.
type ProtocolError = conn.ProtocolError

// The exact ERR: message set the wire protocol requires.
var (
	ErrBadRequest     = conn.ErrBadRequest
	ErrSequenceRange  = conn.ErrSequenceRange
	ErrStartInvalid   = conn.ErrStartInvalid
	ErrStepInvalid    = conn.ErrStepInvalid
	ErrSequenceExists = conn.ErrSequenceExists
	ErrUnknownCommand = conn.ErrUnknownCommand
)
