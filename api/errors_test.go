// File: api/errors_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api_test

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-io/api"
)

func TestSysErrorMessage(t *testing.T) {
	t.Parallel()

	err := api.NewSysError("open", syscall.ENOENT)
	require.Equal(t, "open: no such file or directory", err.Error())
}

// TestSysErrorUnwrapsToErrno checks that errors.Is can match the
// underlying platform code through the wrapper.
func TestSysErrorUnwrapsToErrno(t *testing.T) {
	t.Parallel()

	err := api.NewSysError("read", syscall.EAGAIN)
	require.ErrorIs(t, err, syscall.EAGAIN)
	require.NotErrorIs(t, err, syscall.ENOENT)
}

func TestSysErrorMatchesThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := api.NewSysError("write", syscall.EPIPE)
	outer := fmt.Errorf("flush: %w", inner)

	require.ErrorIs(t, outer, syscall.EPIPE)

	var sys *api.SysError
	require.ErrorAs(t, outer, &sys)
	require.Equal(t, "write", sys.Op)
	require.Equal(t, syscall.EPIPE, sys.Errno)
}

// TestNewSysErrorFlattensForeignErrors checks that a non-errno cause
// collapses to EIO instead of being lost.
func TestNewSysErrorFlattensForeignErrors(t *testing.T) {
	t.Parallel()

	err := api.NewSysError("close", errors.New("not a syscall failure"))
	require.Equal(t, syscall.EIO, err.Errno)
	require.ErrorIs(t, err, syscall.EIO)
}

func TestNewSysErrorKeepsWrappedErrno(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("epoll ctl mod: %w", syscall.EBADF)
	err := api.NewSysError("epoll_ctl", cause)
	require.Equal(t, syscall.EBADF, err.Errno)
}

func TestErrCancelledIdentity(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("pending read: %w", api.ErrCancelled)
	require.ErrorIs(t, wrapped, api.ErrCancelled)
	require.Equal(t, "io operation cancelled", api.ErrCancelled.Error())
}
