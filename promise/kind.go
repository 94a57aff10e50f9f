// File: promise/kind.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package promise

// Kind enumerates the disposition of an asynchronous operation.
type Kind int

const (
	// KindSuccess marks a completed operation holding its result payload.
	KindSuccess Kind = iota
	// KindFailure marks a completed operation holding an error.
	KindFailure
	// KindWaiting marks an operation pending on descriptor readiness.
	KindWaiting
	// KindBlocked marks an operation pending on another operation.
	KindBlocked
)

// Terminal reports whether the kind is final (success or failure).
func (k Kind) Terminal() bool { return k == KindSuccess || k == KindFailure }

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	case KindWaiting:
		return "waiting"
	case KindBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}
