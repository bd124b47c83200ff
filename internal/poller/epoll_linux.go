//go:build linux
// +build linux

package poller

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/archatas/seqreactor/internal/constants"
)

// epollPoller implements Poller with Linux epoll in edge-triggered mode.
type epollPoller struct {
	epfd int
	raw  []unix.EpollEvent
}

// New creates an epoll-backed Poller.
func New() (Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollPoller{epfd: epfd, raw: make([]unix.EpollEvent, constants.MaxEvents)}, nil
}

func toEpollEvents(interest Interest) uint32 {
	ev := uint32(unix.EPOLLET)
	if interest&Readable != 0 {
		ev |= unix.EPOLLIN
	}
	if interest&Writable != 0 {
		ev |= unix.EPOLLOUT
	}
	return ev
}

func (p *epollPoller) Add(fd int, interest Interest) error {
	event := unix.EpollEvent{Events: toEpollEvents(interest), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &event)
}

func (p *epollPoller) Modify(fd int, interest Interest) error {
	event := unix.EpollEvent{Events: toEpollEvents(interest), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &event)
}

func (p *epollPoller) Remove(fd int) error {
	err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == unix.ENOENT || err == unix.EBADF {
		return nil
	}
	return err
}

func (p *epollPoller) Wait(buf []Event, timeout time.Duration) ([]Event, error) {
	ms := int(timeout / time.Millisecond)
	n, err := unix.EpollWait(p.epfd, p.raw, ms)
	if err != nil {
		if err == unix.EINTR {
			return buf[:0], nil
		}
		return nil, err
	}
	out := buf[:0]
	for i := 0; i < n; i++ {
		e := p.raw[i]
		out = append(out, Event{
			FD:       int(e.Fd),
			Readable: e.Events&unix.EPOLLIN != 0,
			Writable: e.Events&unix.EPOLLOUT != 0,
			Error:    e.Events&unix.EPOLLERR != 0,
			HungUp:   e.Events&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0,
		})
	}
	return out, nil
}

func (p *epollPoller) Close() error {
	return unix.Close(p.epfd)
}
