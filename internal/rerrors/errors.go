// Package rerrors provides the structured process/connection error type
// shared by internal/server, internal/reactor, and the root package's
// public alias of the same type. Living in its own internal package lets
// both internal/server and internal/reactor wrap errno-level failures with
// it without creating an import cycle back through the root package.
package rerrors

import (
	"errors"
	"fmt"
	"syscall"
)

// Error represents a structured, process- or connection-level failure with
// enough context to distinguish a bind failure from a dropped connection
// without parsing message text.
type Error struct {
	Op    string // operation that failed, e.g. "bind", "accept", "read"
	FD    int    // connection fd, -1 if not applicable
	Code  ErrorCode
	Errno syscall.Errno
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.FD >= 0 {
		return fmt.Sprintf("seqreactor: %s (op=%s fd=%d)", msg, e.Op, e.FD)
	}
	if e.Op != "" {
		return fmt.Sprintf("seqreactor: %s (op=%s)", msg, e.Op)
	}
	return fmt.Sprintf("seqreactor: %s", msg)
}

// Unwrap supports errors.Is/As against Inner.
func (e *Error) Unwrap() error { return e.Inner }

// Is supports errors.Is comparison by error category.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// ErrorCode is a high-level error category.
type ErrorCode string

const (
	ErrCodeBindFailed   ErrorCode = "bind failed"
	ErrCodeListenFailed ErrorCode = "listen failed"
	ErrCodePollerFailed ErrorCode = "poller setup failed"
	ErrCodeConnectionIO ErrorCode = "connection I/O error"
	ErrCodeAcceptFailed ErrorCode = "accept failed"
	ErrCodeOutOfMemory  ErrorCode = "out of memory"
)

// NewError creates a process-level structured error with no fd context.
func NewError(op string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, FD: -1, Code: code, Msg: msg}
}

// NewConnError creates a connection-level structured error.
func NewConnError(op string, fd int, code ErrorCode, msg string) *Error {
	return &Error{Op: op, FD: fd, Code: code, Msg: msg}
}

// WrapError wraps inner with seqreactor context, mapping syscall.Errno
// values to an ErrorCode where possible.
func WrapError(op string, fd int, inner error) *Error {
	if inner == nil {
		return nil
	}
	if se, ok := inner.(*Error); ok {
		return &Error{Op: op, FD: fd, Code: se.Code, Errno: se.Errno, Msg: se.Msg, Inner: se.Inner}
	}
	code := ErrCodeConnectionIO
	var errno syscall.Errno
	if e, ok := inner.(syscall.Errno); ok {
		errno = e
		code = mapErrnoToCode(e)
	}
	return &Error{Op: op, FD: fd, Code: code, Errno: errno, Msg: inner.Error(), Inner: inner}
}

func mapErrnoToCode(errno syscall.Errno) ErrorCode {
	switch errno {
	case syscall.ENOMEM, syscall.ENOBUFS:
		return ErrCodeOutOfMemory
	case syscall.EADDRINUSE, syscall.EACCES:
		return ErrCodeBindFailed
	default:
		return ErrCodeConnectionIO
	}
}

// IsCode reports whether err is a *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
