// File: promise/failure.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package promise

import (
	"fmt"

	"github.com/momentics/hioload-io/api"
)

// failureState is the terminal outcome of a failed operation. The same
// instance is shared by every handle the failure propagates to, so error
// identity is preserved along a bind chain.
type failureState struct {
	sid uint64
	err error
}

// Fail constructs a handle already resolved with err.
func Fail[T any](err error) Handle[T] {
	if err == nil {
		panic("promise: Fail with nil error")
	}
	return Handle[T]{newRef(&failureState{sid: nextStateID(), err: err})}
}

// newCancelled is the outcome adopted by a waiter abandoned before
// delivery.
func newCancelled() state {
	return &failureState{sid: nextStateID(), err: api.ErrCancelled}
}

func (f *failureState) kind() Kind { return KindFailure }
func (f *failureState) id() uint64 { return f.sid }

func (f *failureState) process(self *cell, fd int) {
	panic(fmt.Sprintf("promise: readiness event on a failure handle [%d/%d], fd %d", self.id, f.sid, fd))
}

func (f *failureState) cancelled() state {
	panic(fmt.Sprintf("promise: cancel of a failure handle [_/%d]", f.sid))
}

func (f *failureState) notified(self, upstream *cell) *cell {
	panic(fmt.Sprintf("promise: failure handle [%d/%d] notified by [%d]", self.id, f.sid, upstream.id))
}
