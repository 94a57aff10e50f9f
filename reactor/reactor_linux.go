//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7) poller implementation and factory.

package reactor

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-io/api"
)

// epollPoller is a level-triggered epoll-based poller.
type epollPoller struct {
	epfd int
	raw  []unix.EpollEvent
}

// New constructs the platform poller for Linux.
func New() (Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("reactor: epoll create: %w", err)
	}
	return &epollPoller{epfd: epfd}, nil
}

func (p *epollPoller) Add(fd int) error {
	ev := &unix.EpollEvent{Events: 0, Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
		return fmt.Errorf("reactor: epoll ctl add: %w", err)
	}
	return nil
}

func (p *epollPoller) Arm(fd int, mask api.EventMask) error {
	ev := &unix.EpollEvent{Events: epollBits(mask), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, ev); err != nil {
		return fmt.Errorf("reactor: epoll ctl mod: %w", err)
	}
	return nil
}

func (p *epollPoller) Del(fd int) error {
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("reactor: epoll ctl del: %w", err)
	}
	return nil
}

func (p *epollPoller) Wait(events []Event, timeoutMs int) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	if cap(p.raw) < len(events) {
		p.raw = make([]unix.EpollEvent, len(events))
	}
	raw := p.raw[:len(events)]
	n, err := unix.EpollWait(p.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil // interrupted by signal, normal
		}
		return 0, fmt.Errorf("reactor: epoll wait: %w", err)
	}
	for i := 0; i < n; i++ {
		events[i] = Event{Fd: int(raw[i].Fd), Mask: eventBits(raw[i].Events)}
	}
	return n, nil
}

func (p *epollPoller) Close() error {
	return unix.Close(p.epfd)
}

func epollBits(mask api.EventMask) uint32 {
	var bits uint32
	if mask.Has(api.EventRead) {
		bits |= unix.EPOLLIN
	}
	if mask.Has(api.EventWrite) {
		bits |= unix.EPOLLOUT
	}
	return bits
}

func eventBits(bits uint32) api.EventMask {
	var mask api.EventMask
	if bits&unix.EPOLLIN != 0 {
		mask |= api.EventRead
	}
	if bits&unix.EPOLLOUT != 0 {
		mask |= api.EventWrite
	}
	if bits&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
		mask |= api.EventError
	}
	return mask
}
