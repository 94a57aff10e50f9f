// File: promise/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package promise implements the continuation core of hioload-io: an
// asynchronous operation is a first-class value (a [Handle]) that carries
// its own completion state and is composed with [Bind] instead of manually
// threaded callbacks.
//
// A handle references a mutable cell holding one of four outcomes:
//
//   - success: final, carries the result payload
//   - failure: final, carries a domain error or the cancellation sentinel
//   - waiting: pending until the reactor delivers readiness for a descriptor
//   - blocked: pending until one upstream handle completes
//
// [Bind] works uniformly over all four: an already-successful source runs
// the continuation immediately, a failed source short-circuits without
// invoking it, and a pending source yields a placeholder handle resolved
// later by the completion cascade. Suspension is not stack suspension:
// a pending handle returns to its caller at once, and execution resumes
// when the event loop delivers readiness.
//
// Completion cascades are drained iteratively through a FIFO worklist, so
// arbitrarily long bind chains resolve without native stack growth.
// Dependents of one cell are notified in registration order.
//
// The package is single-threaded: handles and cells must only be
// mutated from the goroutine driving the event loop. All invariant
// violations (double delivery, notifying a terminal handle, waiting twice
// on one descriptor, self-transition) are programming errors and panic.
package promise
