// File: loop/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package loop owns descriptor registration and the per-descriptor waiter
// slots, and pumps poller readiness into handle resolution. Exactly one
// waiter may be outstanding per descriptor at a time; everything here must
// be driven from a single goroutine.
package loop

import (
	"fmt"
	"log/slog"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/promise"
	"github.com/momentics/hioload-io/reactor"
)

// waiter is one occupied slot: the requested readiness mask and the
// waiting handle to resume on delivery.
type waiter struct {
	mask api.EventMask
	ref  promise.Ref
}

// Loop multiplexes waiter slots over one poller.
type Loop struct {
	cfg        *Config
	log        *slog.Logger
	poller     reactor.Poller
	registered map[int]bool
	slots      map[int]waiter
	events     []reactor.Event
	closed     bool
}

// New constructs a loop over the platform poller unless one is injected
// via WithPoller.
func New(opts ...Option) (*Loop, error) {
	l := &Loop{
		cfg:        DefaultConfig(),
		log:        slog.Default(),
		registered: make(map[int]bool),
		slots:      make(map[int]waiter),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.poller == nil {
		p, err := reactor.New()
		if err != nil {
			return nil, err
		}
		l.poller = p
	}
	if l.cfg.BatchSize <= 0 {
		l.cfg.BatchSize = DefaultConfig().BatchSize
	}
	l.events = make([]reactor.Event, l.cfg.BatchSize)
	return l, nil
}

// Register begins tracking fd. Idempotent per descriptor; must be called
// before any wait on fd.
func (l *Loop) Register(fd int) error {
	if l.registered[fd] {
		return nil
	}
	if err := l.poller.Add(fd); err != nil {
		return err
	}
	l.registered[fd] = true
	l.log.Debug("loop: descriptor registered", "fd", fd)
	return nil
}

// Unregister stops tracking fd. A still-pending waiter on fd is resolved
// to the cancellation failure, never silently dropped.
func (l *Loop) Unregister(fd int) error {
	if !l.registered[fd] {
		return nil
	}
	if w, ok := l.slots[fd]; ok {
		delete(l.slots, fd)
		l.log.Debug("loop: waiter cancelled", "fd", fd, "cell", w.ref.ID())
		w.ref.Cancel()
	}
	delete(l.registered, fd)
	return l.poller.Del(fd)
}

// Registered reports whether fd is currently tracked.
func (l *Loop) Registered(fd int) bool { return l.registered[fd] }

// Pending reports the number of descriptors with an outstanding waiter.
func (l *Loop) Pending() int { return len(l.slots) }

// WaitFor suspends on readiness of fd: it allocates a waiting handle
// carrying resume, arms the descriptor, and parks the handle in fd's
// waiter slot. The descriptor must be registered, the mask non-empty, and
// the slot free; a second wait before the first resolves is a fatal usage
// error, not a recoverable one.
func WaitFor[T any](l *Loop, fd int, mask api.EventMask, resume func(fd int) promise.Handle[T]) promise.Handle[T] {
	if !l.registered[fd] {
		panic(fmt.Sprintf("loop: wait on unregistered fd %d", fd))
	}
	if mask == 0 {
		panic(fmt.Sprintf("loop: wait with empty event mask on fd %d", fd))
	}
	if _, ok := l.slots[fd]; ok {
		panic(fmt.Sprintf("loop: attempted to wait on the same fd twice: fd %d", fd))
	}
	if err := l.poller.Arm(fd, mask); err != nil {
		return promise.Fail[T](api.NewSysError("epoll_ctl", err))
	}
	h := promise.Waiting(resume)
	l.slots[fd] = waiter{mask: mask, ref: h.Ref}
	l.log.Debug("loop: waiter armed", "fd", fd, "mask", mask, "cell", h.ID())
	return h
}

// pump blocks for one poller wake and delivers readiness to the matching
// waiter slots. Each slot is emptied before its handle is processed, so a
// resume callback may immediately wait on the same descriptor again; the
// interest mask is cleared afterwards unless that happened. An error or
// hangup condition wakes the waiter regardless of its requested mask.
func (l *Loop) pump() error {
	n, err := l.poller.Wait(l.events, -1)
	if err != nil {
		return err
	}
	for _, ev := range l.events[:n] {
		w, ok := l.slots[ev.Fd]
		if !ok {
			continue // stale readiness, slot already gone
		}
		if !ev.Mask.Intersects(w.mask | api.EventError) {
			continue
		}
		delete(l.slots, ev.Fd)
		l.log.Debug("loop: readiness delivered", "fd", ev.Fd, "mask", ev.Mask, "cell", w.ref.ID())
		w.ref.Process(ev.Fd)
		if _, refilled := l.slots[ev.Fd]; !refilled && l.registered[ev.Fd] {
			if err := l.poller.Arm(ev.Fd, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close cancels every outstanding waiter, drops every registered
// descriptor, and closes the poller. The descriptors themselves stay
// open; their owners close them.
func (l *Loop) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	for fd, w := range l.slots {
		delete(l.slots, fd)
		l.log.Debug("loop: waiter cancelled", "fd", fd, "cell", w.ref.ID())
		w.ref.Cancel()
	}
	var first error
	for fd := range l.registered {
		delete(l.registered, fd)
		if err := l.poller.Del(fd); err != nil && first == nil {
			first = err
		}
	}
	if err := l.poller.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
