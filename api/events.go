// File: api/events.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Readiness event masks shared by the reactor, the loop, and leaf
// operations.

package api

import "strings"

// EventMask is a bit set of readiness conditions on a descriptor.
type EventMask uint32

const (
	// EventRead indicates the descriptor is readable.
	EventRead EventMask = 1 << iota
	// EventWrite indicates the descriptor is writable.
	EventWrite
	// EventError indicates an error or hangup condition. The reactor may
	// deliver it even when it was not requested; a pending waiter must be
	// woken so the resumed syscall can observe the condition.
	EventError
)

// Has reports whether every bit of m is set in e.
func (e EventMask) Has(m EventMask) bool { return e&m == m }

// Intersects reports whether e and m share at least one bit.
func (e EventMask) Intersects(m EventMask) bool { return e&m != 0 }

func (e EventMask) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	if e&EventRead != 0 {
		parts = append(parts, "read")
	}
	if e&EventWrite != 0 {
		parts = append(parts, "write")
	}
	if e&EventError != 0 {
		parts = append(parts, "error")
	}
	return strings.Join(parts, "|")
}
