// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error vocabulary crossing the core boundary: one structured kind carrying
// the platform last-error code, plus the cancellation sentinel.

package api

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrCancelled is the failure payload of an operation that was abandoned
// while still pending: its waiter slot was torn down before readiness was
// delivered. It propagates through bind like any other failure; callers
// that care match it with errors.Is.
var ErrCancelled = errors.New("io operation cancelled")

// SysError is a failed system call. Leaf operations translate OS-level
// failures into this kind before constructing a failure handle.
type SysError struct {
	Op    string        // the failing operation, e.g. "open", "read"
	Errno syscall.Errno // platform last-error code
}

// NewSysError builds a SysError from an op name and a syscall error
// value. Non-errno errors are flattened to EIO.
func NewSysError(op string, err error) *SysError {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		errno = syscall.EIO
	}
	return &SysError{Op: op, Errno: errno}
}

func (e *SysError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Errno.Error())
}

// Unwrap exposes the errno so errors.Is(err, unix.ENOENT) works.
func (e *SysError) Unwrap() error { return e.Errno }
