//go:build linux
// +build linux

// File: unixio/file.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package unixio

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/loop"
	"github.com/momentics/hioload-io/promise"
)

// Open opens path read-only and non-blocking, resolving immediately to
// the descriptor or to the translated OS failure.
func Open(l *loop.Loop, path string) promise.Handle[int] {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return promise.Fail[int](api.NewSysError("open", err))
	}
	return promise.Succeed(fd)
}

// Close resolves any waiter still pending on fd to the cancellation
// failure, stops tracking the descriptor, and closes it.
func Close(l *loop.Loop, fd int) promise.Handle[promise.Unit] {
	if err := l.Unregister(fd); err != nil {
		unix.Close(fd)
		return promise.Fail[promise.Unit](api.NewSysError("epoll_ctl", err))
	}
	if err := unix.Close(fd); err != nil {
		return promise.Fail[promise.Unit](api.NewSysError("close", err))
	}
	return promise.Succeed(promise.Unit{})
}

// Read produces up to n bytes from fd with a single read(2), waiting for
// readability first if the descriptor has no data yet. A short read
// returns a short slice; end of file returns an empty one.
func Read(l *loop.Loop, fd, n int) promise.Handle[[]byte] {
	buf := make([]byte, n)
	got, err := unix.Read(fd, buf)
	switch {
	case err == unix.EINTR:
		return Read(l, fd, n)
	case err == unix.EAGAIN:
		if rerr := l.Register(fd); rerr != nil {
			return promise.Fail[[]byte](api.NewSysError("epoll_ctl", rerr))
		}
		return loop.WaitFor(l, fd, api.EventRead, func(fd int) promise.Handle[[]byte] {
			return Read(l, fd, n)
		})
	case err != nil:
		return promise.Fail[[]byte](api.NewSysError("read", err))
	}
	return promise.Succeed(buf[:got])
}

// Write writes p to fd with a single write(2), waiting for writability
// first if the descriptor cannot accept data yet. It resolves to the
// number of bytes written, which may be short.
func Write(l *loop.Loop, fd int, p []byte) promise.Handle[int] {
	n, err := unix.Write(fd, p)
	switch {
	case err == unix.EINTR:
		return Write(l, fd, p)
	case err == unix.EAGAIN:
		if rerr := l.Register(fd); rerr != nil {
			return promise.Fail[int](api.NewSysError("epoll_ctl", rerr))
		}
		return loop.WaitFor(l, fd, api.EventWrite, func(fd int) promise.Handle[int] {
			return Write(l, fd, p)
		})
	case err != nil:
		return promise.Fail[int](api.NewSysError("write", err))
	}
	return promise.Succeed(n)
}
