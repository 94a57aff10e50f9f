// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral readiness poller interface.

// Package reactor bridges OS readiness notification into the event loop.
// The Linux implementation is epoll(7); other platforms get a stub
// factory that reports the platform as unsupported.
package reactor

import "github.com/momentics/hioload-io/api"

// Poller is the OS readiness facility the loop pumps. At most one
// interest mask is outstanding per descriptor: Add starts tracking with
// an empty mask, Arm replaces the mask, Del stops tracking.
type Poller interface {
	// Add starts tracking fd with no readiness interest.
	Add(fd int) error

	// Arm replaces fd's interest mask. A zero mask disarms the
	// descriptor without removing it.
	Arm(fd int, mask api.EventMask) error

	// Del stops tracking fd.
	Del(fd int) error

	// Wait blocks until readiness is available and fills events,
	// returning the number written. timeoutMs < 0 blocks indefinitely.
	// Zero events with a nil error is a normal wakeup (for example an
	// interrupted wait).
	Wait(events []Event, timeoutMs int) (int, error)

	// Close releases poller resources.
	Close() error
}

// Event is one readiness notification returned by Wait. The mask may
// include EventError even when it was never requested.
type Event struct {
	Fd   int
	Mask api.EventMask
}
