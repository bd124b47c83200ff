//go:build !linux
// +build !linux

package poller

import "time"

type stubPoller struct{}

// New returns ErrUnsupportedPlatform; the reactor's epoll-based design has
// no portable equivalent implemented here.
func New() (Poller, error) {
	return nil, ErrUnsupportedPlatform
}

func (stubPoller) Add(fd int, interest Interest) error { return ErrUnsupportedPlatform }
func (stubPoller) Modify(fd int, interest Interest) error { return ErrUnsupportedPlatform }
func (stubPoller) Remove(fd int) error                  { return ErrUnsupportedPlatform }
func (stubPoller) Wait(buf []Event, timeout time.Duration) ([]Event, error) {
	return nil, ErrUnsupportedPlatform
}
func (stubPoller) Close() error { return ErrUnsupportedPlatform }
