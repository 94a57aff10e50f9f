// File: promise/state.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The sealed outcome interface and its diagnostic identity counters.

package promise

import "sync/atomic"

// state is the outcome currently held by a cell. Implementations are the
// four variants (success/failure/waiting/blocked) plus the internal
// forwarding node; the set is closed.
//
// Variants that do not support an operation panic: delivering readiness to
// anything but a waiting state, cancelling anything but a waiting state,
// or notifying anything but a blocked state all indicate a corrupted
// composition graph with no recovery path.
type state interface {
	kind() Kind
	id() uint64

	// process delivers a readiness event for fd to the cell currently
	// holding this state, consuming the stored resume callback.
	process(self *cell, fd int)

	// cancelled returns the outcome to adopt when the owning waiter slot
	// is torn down before delivery.
	cancelled() state

	// notified reports that upstream completed successfully. It returns
	// self when self just resolved and its own dependents must cascade,
	// nil otherwise.
	notified(self, upstream *cell) *cell
}

// Monotonic diagnostic identities, separate sequences for outcomes and
// cells as in the log format "[cell/outcome]".
var (
	stateSeq atomic.Uint64
	cellSeq  atomic.Uint64
)

func nextStateID() uint64 { return stateSeq.Add(1) }
func nextCellID() uint64  { return cellSeq.Add(1) }
