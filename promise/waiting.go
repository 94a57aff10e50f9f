// File: promise/waiting.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package promise

import (
	"fmt"
	"log/slog"
)

// waitingState is the outcome of an operation pending on descriptor
// readiness. The stored resume callback runs exactly once, when the
// reactor delivers a matching event.
type waitingState[T any] struct {
	sid    uint64
	resume func(fd int) Handle[T]
}

// Waiting constructs a handle that resolves when the event loop delivers
// readiness for the descriptor it is registered against. The loop's
// WaitFor is the only intended caller; resume receives the ready
// descriptor and returns the operation's outcome, which may itself still
// be pending.
func Waiting[T any](resume func(fd int) Handle[T]) Handle[T] {
	if resume == nil {
		panic("promise: Waiting with nil resume")
	}
	return Handle[T]{newRef(&waitingState[T]{sid: nextStateID(), resume: resume})}
}

func (w *waitingState[T]) kind() Kind { return KindWaiting }
func (w *waitingState[T]) id() uint64 { return w.sid }

func (w *waitingState[T]) process(self *cell, fd int) {
	resume := w.resume
	if resume == nil {
		panic(fmt.Sprintf("promise: waiting handle [%d/%d] resumed twice", self.id, w.sid))
	}
	w.resume = nil
	slog.Debug("promise: waiting handle resumed", "cell", self.id, "fd", fd)
	result := resume(fd)
	self.transition(result.c)
}

func (w *waitingState[T]) cancelled() state {
	return newCancelled()
}

func (w *waitingState[T]) notified(self, upstream *cell) *cell {
	panic(fmt.Sprintf("promise: waiting handle [%d/%d] notified by [%d]", self.id, w.sid, upstream.id))
}
