package seqreactor

import "github.com/archatas/seqreactor/internal/rerrors"

// Error, ErrorCode, and the constructors below alias internal/rerrors so
// internal/server and internal/reactor can produce and wrap the same
// structured error type the public API exposes, without importing this
// root package (which would cycle back through them).
type Error = rerrors.Error
type ErrorCode = rerrors.ErrorCode

const (
	ErrCodeBindFailed   = rerrors.ErrCodeBindFailed
	ErrCodeListenFailed = rerrors.ErrCodeListenFailed
	ErrCodePollerFailed = rerrors.ErrCodePollerFailed
	ErrCodeConnectionIO = rerrors.ErrCodeConnectionIO
	ErrCodeAcceptFailed = rerrors.ErrCodeAcceptFailed
	ErrCodeOutOfMemory  = rerrors.ErrCodeOutOfMemory
)

func NewError(op string, code ErrorCode, msg string) *Error {
	return rerrors.NewError(op, code, msg)
}

func NewConnError(op string, fd int, code ErrorCode, msg string) *Error {
	return rerrors.NewConnError(op, fd, code, msg)
}

func WrapError(op string, fd int, inner error) *Error {
	return rerrors.WrapError(op, fd, inner)
}

func IsCode(err error, code ErrorCode) bool {
	return rerrors.IsCode(err, code)
}
