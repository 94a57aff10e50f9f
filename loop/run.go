// File: loop/run.go
// Package loop program driver: pumps the poller until the composed
// program resolves.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package loop

import "github.com/momentics/hioload-io/promise"

// Run drives l until root resolves: it pumps readiness while any waiter
// is outstanding, then inspects the root handle. Success and failure are
// normal termination; a root still pending after the loop drained fell
// off the end without resolving, a fatal composition error. A root that
// is already terminal returns without the poller ever being invoked.
func Run[T any](l *Loop, root promise.Handle[T]) (T, error) {
	for l.Pending() > 0 {
		if err := l.pump(); err != nil {
			var zero T
			return zero, err
		}
	}
	switch root.Kind() {
	case promise.KindSuccess, promise.KindFailure:
		return root.Value()
	case promise.KindWaiting:
		panic("loop: program terminated in waiting state")
	default:
		panic("loop: program terminated in blocked state")
	}
}
