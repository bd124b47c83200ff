//go:build linux
// +build linux

package server

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/archatas/seqreactor/internal/constants"
	"github.com/archatas/seqreactor/internal/rerrors"
)

// bindListener creates a non-blocking, SO_REUSEPORT IPv4 listening socket
// bound to host:port with the protocol's backlog. AF_INET only, matching
// the original implementation; dual-stack is out of scope.
//
// Failures are returned as *rerrors.Error so callers can distinguish a bind
// failure (address in use, permission denied) from a listen failure by
// ErrorCode instead of matching message text.
func bindListener(host string, port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, rerrors.WrapError("socket", -1, err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, rerrors.WrapError("setsockopt SO_REUSEADDR", -1, err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		unix.Close(fd)
		return -1, rerrors.WrapError("setsockopt SO_REUSEPORT", -1, err)
	}

	ip := net.ParseIP(host)
	if ip == nil {
		resolved, err := net.ResolveIPAddr("ip4", host)
		if err != nil {
			unix.Close(fd)
			return -1, rerrors.NewError("resolve", rerrors.ErrCodeBindFailed, fmt.Sprintf("resolve host %q: %v", host, err))
		}
		ip = resolved.IP
	}
	ip4 := ip.To4()
	if ip4 == nil {
		unix.Close(fd)
		return -1, rerrors.NewError("resolve", rerrors.ErrCodeBindFailed, fmt.Sprintf("host %q is not an IPv4 address", host))
	}

	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], ip4)

	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, rerrors.WrapError(fmt.Sprintf("bind %s:%d", host, port), -1, err)
	}
	if err := unix.Listen(fd, constants.ListenBacklog); err != nil {
		unix.Close(fd)
		werr := rerrors.WrapError("listen", -1, err)
		werr.Code = rerrors.ErrCodeListenFailed
		return -1, werr
	}

	return fd, nil
}
