// File: promise/blocked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package promise

import (
	"fmt"
	"log/slog"
)

// blockedState is the outcome of an operation pending on another
// operation. It stores the continuations to run against the upstream
// payload, consumed exactly once. S is the upstream payload type, T the
// result type of every stored continuation.
type blockedState[S, T any] struct {
	sid   uint64
	conts []func(S) Handle[T]
}

func (b *blockedState[S, T]) kind() Kind { return KindBlocked }
func (b *blockedState[S, T]) id() uint64 { return b.sid }

func (b *blockedState[S, T]) process(self *cell, fd int) {
	panic(fmt.Sprintf("promise: readiness event on a blocked handle [%d/%d], fd %d", self.id, b.sid, fd))
}

func (b *blockedState[S, T]) cancelled() state {
	panic(fmt.Sprintf("promise: cancel of a blocked handle [_/%d]", b.sid))
}

// notified runs the stored continuations once upstream resolves. An
// upstream observed waiting means resolution re-deferred across another
// hop; the node re-registers and stays pending. Anything else reaching
// here is a corrupted graph: failures short-circuit at the cascade walk
// and never arrive.
func (b *blockedState[S, T]) notified(self, upstream *cell) *cell {
	switch upstream.st.kind() {
	case KindSuccess:
		conts := b.conts
		if conts == nil {
			panic(fmt.Sprintf("promise: blocked handle [%d/%d] notified twice", self.id, b.sid))
		}
		b.conts = nil
		ss, ok := upstream.st.(*successState[S])
		if !ok {
			panic(fmt.Sprintf("promise: payload type mismatch notifying handle [%d/%d]: upstream [%d] holds %T",
				self.id, b.sid, upstream.id, upstream.st))
		}
		slog.Debug("promise: blocked handle resolving",
			"cell", self.id, "upstream", upstream.id, "continuations", len(conts))
		result := runAll(conts, ss.value)
		self.transition(result.c)
		if self.st.kind().Terminal() {
			return self
		}
		return nil
	case KindWaiting:
		upstream.addBlocked(self)
		return nil
	default:
		panic(fmt.Sprintf("promise: blocked handle [%d/%d] notified by %s handle [%d]",
			self.id, b.sid, upstream.st.kind(), upstream.id))
	}
}

// forwardState is the internal node left behind when a transition hands a
// cell an outcome that is itself still pending. The donor cell stays the
// live owner of that pending outcome (a waiter slot or an upstream blocked
// list resolves the donor, not self), so self registers on the donor and
// adopts its terminal outcome when it arrives. Forwarding nodes hold no
// continuations; their notification path copies the upstream outcome.
type forwardState struct {
	sid uint64
}

func (f *forwardState) kind() Kind { return KindBlocked }
func (f *forwardState) id() uint64 { return f.sid }

func (f *forwardState) process(self *cell, fd int) {
	panic(fmt.Sprintf("promise: readiness event on a blocked handle [%d/%d], fd %d", self.id, f.sid, fd))
}

func (f *forwardState) cancelled() state {
	panic(fmt.Sprintf("promise: cancel of a blocked handle [_/%d]", f.sid))
}

func (f *forwardState) notified(self, upstream *cell) *cell {
	switch upstream.st.kind() {
	case KindSuccess:
		self.transition(upstream)
		return self
	case KindWaiting:
		upstream.addBlocked(self)
		return nil
	default:
		panic(fmt.Sprintf("promise: blocked handle [%d/%d] notified by %s handle [%d]",
			self.id, f.sid, upstream.st.kind(), upstream.id))
	}
}
