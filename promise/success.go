// File: promise/success.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package promise

import "fmt"

// Unit is the payload of operations that complete without a result value.
type Unit = struct{}

// successState is the terminal outcome of a completed operation.
type successState[T any] struct {
	sid   uint64
	value T
}

// Succeed constructs a handle already resolved with value. Leaves use it
// to report a result that was available without touching the reactor.
func Succeed[T any](value T) Handle[T] {
	return Handle[T]{newRef(&successState[T]{sid: nextStateID(), value: value})}
}

func (s *successState[T]) kind() Kind { return KindSuccess }
func (s *successState[T]) id() uint64 { return s.sid }

func (s *successState[T]) process(self *cell, fd int) {
	panic(fmt.Sprintf("promise: readiness event on a success handle [%d/%d], fd %d", self.id, s.sid, fd))
}

func (s *successState[T]) cancelled() state {
	panic(fmt.Sprintf("promise: cancel of a success handle [_/%d]", s.sid))
}

func (s *successState[T]) notified(self, upstream *cell) *cell {
	panic(fmt.Sprintf("promise: success handle [%d/%d] notified by [%d]", self.id, s.sid, upstream.id))
}
