// File: unixio/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package unixio provides the POSIX leaf operations built on the
// hioload-io core: Open, Close, Read, Write, and a timerfd-backed Sleep.
// None of them block the calling goroutine. Each leaf attempts its
// syscall non-blocking first and only registers the descriptor and parks
// a waiter when the kernel reports it would block, so descriptors that
// epoll cannot track (regular files) never reach the poller. OS failures
// are translated into api.SysError failure handles.
//
// The implementations are Linux-only, like the platform reactor.
package unixio
