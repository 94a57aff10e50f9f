// File: promise/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package promise

import (
	"fmt"
	"log/slog"

	"github.com/eapache/queue"
)

// cell is the mutable unit a handle references: the current outcome plus
// the ordered list of cells blocked on its completion. A cell's identity
// never changes; transitions replace the outcome wholesale. The blocked
// list is non-empty only while the outcome is pending, and every entry is
// itself in the blocked kind.
type cell struct {
	id      uint64
	st      state
	blocked []*cell
}

// Ref is the type-erased reference to one cell. The loop's waiter slots
// hold Refs; typed access to the payload goes through Handle. Two Refs
// are equal iff they reference the same cell.
type Ref struct {
	c *cell
}

// Handle is the typed view over a Ref: a shared reference to one pending
// or resolved operation. Handles come from the constructors and
// combinators in this package and from the loop's WaitFor.
type Handle[T any] struct {
	Ref
}

func newRef(st state) Ref {
	return Ref{&cell{id: nextCellID(), st: st}}
}

// Kind reports the current disposition.
func (r Ref) Kind() Kind { return r.c.st.kind() }

// ID is the diagnostic identity of the underlying cell.
func (r Ref) ID() uint64 { return r.c.id }

// IsBlocked reports whether any handle is blocked on this one.
func (r Ref) IsBlocked() bool { return len(r.c.blocked) > 0 }

// String renders the diagnostic identity and disposition as
// "[cell/outcome] kind".
func (r Ref) String() string {
	return fmt.Sprintf("[%d/%d] %s", r.c.id, r.c.st.id(), r.c.st.kind())
}

// Process delivers a readiness event for fd, resuming the stored callback
// and cascading completion if the operation reached a terminal outcome.
// The loop empties the waiter slot before calling this, so the resume
// callback may issue a new wait on the same descriptor.
func (r Ref) Process(fd int) {
	r.c.st.process(r.c, fd)
	if r.c.st.kind().Terminal() && len(r.c.blocked) > 0 {
		r.c.cascade()
	}
}

// Notify drains every handle blocked on r. The operation must have
// succeeded; failed handles propagate through the short-circuit walk
// instead and never notify.
func (r Ref) Notify() {
	if k := r.c.st.kind(); k != KindSuccess {
		panic(fmt.Sprintf("promise: notify on a %s handle [%d/%d]", k, r.c.id, r.c.st.id()))
	}
	if len(r.c.blocked) > 0 {
		r.c.cascade()
	}
}

// Cancel resolves a pending waiter to the cancellation failure and
// cascades it to its dependents. Only waiter-slot teardown cancels;
// cancelling a terminal or dependency-blocked handle is a protocol
// violation.
func (r Ref) Cancel() {
	next := r.c.st.cancelled()
	slog.Debug("promise: cancelled", "cell", r.c.id, "state", next.id())
	r.c.st = next
	if len(r.c.blocked) > 0 {
		r.c.cascade()
	}
}

// Value returns the payload or error of a terminal handle. Reading a
// pending handle is a protocol violation.
func (h Handle[T]) Value() (T, error) {
	switch st := h.c.st.(type) {
	case *successState[T]:
		return st.value, nil
	case *failureState:
		var zero T
		return zero, st.err
	}
	panic(fmt.Sprintf("promise: value of a %s handle [%d/%d]", h.c.st.kind(), h.c.id, h.c.st.id()))
}

// transition replaces c's outcome with the donor's. Terminal outcomes are
// adopted by reference, so a propagated failure or a shared payload keeps
// its identity. A donor still pending stays the live owner of its outcome
// (a waiter slot or an upstream blocked list resolves the donor cell, not
// c), so c becomes a forwarding node on the donor instead of stealing the
// pending state.
func (c *cell) transition(donor *cell) {
	if c == donor {
		panic(fmt.Sprintf("promise: handle [%d/%d] transitioned into itself", c.id, c.st.id()))
	}
	from := c.st
	if donor.st.kind().Terminal() {
		c.st = donor.st
		slog.Debug("promise: transition",
			"cell", c.id, "from", from.kind(), "to", c.st.kind(), "state", c.st.id())
		return
	}
	c.st = &forwardState{sid: nextStateID()}
	slog.Debug("promise: transition deferred",
		"cell", c.id, "from", from.kind(), "donor", donor.id)
	donor.addBlocked(c)
}

// addBlocked appends dep to c's blocked list. Registration is legal only
// while c is pending; duplicates and self-blocking corrupt the cascade.
func (c *cell) addBlocked(dep *cell) {
	if c.st.kind().Terminal() {
		panic(fmt.Sprintf("promise: blocked registration on a %s handle [%d/%d]", c.st.kind(), c.id, c.st.id()))
	}
	if dep == c {
		panic(fmt.Sprintf("promise: handle [%d/%d] blocked on itself", c.id, c.st.id()))
	}
	for _, have := range c.blocked {
		if have == dep {
			panic(fmt.Sprintf("promise: handle [%d] already blocked on [%d]", dep.id, c.id))
		}
	}
	c.blocked = append(c.blocked, dep)
	slog.Debug("promise: blocked registered", "cell", c.id, "dependent", dep.id)
}

// cascade drains completion through every cell transitively blocked on c.
// The walk is an explicit FIFO worklist, so arbitrarily long bind chains
// resolve with flat native stack depth; dependents of one cell are
// notified in registration order. A failed cell short-circuits its
// dependents to the same failure outcome without touching their stored
// continuations.
func (c *cell) cascade() {
	work := queue.New()
	work.Add(c)
	drained := 0
	for work.Length() > 0 {
		up := work.Remove().(*cell)
		deps := up.blocked
		if len(deps) == 0 {
			continue
		}
		up.blocked = nil
		drained += len(deps)
		switch up.st.kind() {
		case KindSuccess:
			for _, dep := range deps {
				if next := dep.st.notified(dep, up); next != nil {
					work.Add(next)
				}
			}
		case KindFailure:
			for _, dep := range deps {
				dep.transition(up)
				work.Add(dep)
			}
		default:
			panic(fmt.Sprintf("promise: cascade reached a %s handle [%d/%d]", up.st.kind(), up.id, up.st.id()))
		}
	}
	slog.Debug("promise: cascade drained", "root", c.id, "notified", drained)
}
