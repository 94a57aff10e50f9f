//go:build linux
// +build linux

// File: unixio/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package unixio

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/loop"
	"github.com/momentics/hioload-io/promise"
)

// Sleep resolves after d elapses, timed by a dedicated timerfd. The
// descriptor is unregistered and closed when the timer fires; a sleep
// abandoned at loop teardown resolves to the cancellation failure and
// leaves its descriptor to process exit. A non-positive duration
// resolves immediately.
func Sleep(l *loop.Loop, d time.Duration) promise.Handle[promise.Unit] {
	if d <= 0 {
		return promise.Succeed(promise.Unit{})
	}
	tfd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		return promise.Fail[promise.Unit](api.NewSysError("timerfd_create", err))
	}
	ts := &unix.ItimerSpec{Value: unix.NsecToTimespec(d.Nanoseconds())}
	if err := unix.TimerfdSettime(tfd, 0, ts, nil); err != nil {
		unix.Close(tfd)
		return promise.Fail[promise.Unit](api.NewSysError("timerfd_settime", err))
	}
	if err := l.Register(tfd); err != nil {
		unix.Close(tfd)
		return promise.Fail[promise.Unit](api.NewSysError("epoll_ctl", err))
	}
	return loop.WaitFor(l, tfd, api.EventRead, func(fd int) promise.Handle[promise.Unit] {
		var ticks [8]byte
		unix.Read(fd, ticks[:])
		l.Unregister(fd)
		unix.Close(fd)
		return promise.Succeed(promise.Unit{})
	})
}
