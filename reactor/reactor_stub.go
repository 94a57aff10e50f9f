//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub factory for unsupported platforms.

package reactor

import "errors"

// New returns an error on platforms without a poller implementation.
func New() (Poller, error) {
	return nil, errors.New("reactor: this platform is not supported")
}
