// File: promise/handle_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// White-box tests for cell mechanics: transition, blocked registration,
// the notification walk, and the protocol violation panics.

package promise

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-io/api"
)

func TestSucceedIsTerminal(t *testing.T) {
	t.Parallel()

	h := Succeed(42)
	require.Equal(t, KindSuccess, h.Kind())
	require.False(t, h.IsBlocked())

	v, err := h.Value()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestFailCarriesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	h := Fail[int](boom)
	require.Equal(t, KindFailure, h.Kind())

	_, err := h.Value()
	require.Same(t, boom, err)
}

func TestFailNilErrorPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Fail[int](nil) })
}

// TestTransitionAdoptsTerminalState verifies that a terminal donor's
// outcome moves into the receiving cell by reference while the receiving
// cell keeps its identity.
func TestTransitionAdoptsTerminalState(t *testing.T) {
	t.Parallel()

	w := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	donor := Succeed(7)

	id := w.ID()
	w.c.transition(donor.c)

	require.Equal(t, id, w.ID())
	require.Equal(t, KindSuccess, w.Kind())
	require.Same(t, donor.c.st, w.c.st)
}

// TestTransitionToPendingForwards verifies that a pending donor stays the
// live owner of its outcome and the receiving cell turns into a
// forwarding node registered on it.
func TestTransitionToPendingForwards(t *testing.T) {
	t.Parallel()

	donor := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	w := Waiting(func(fd int) Handle[int] { return Succeed(fd) })

	w.c.transition(donor.c)

	require.Equal(t, KindBlocked, w.Kind())
	require.Equal(t, KindWaiting, donor.Kind())
	require.True(t, donor.IsBlocked())
	require.Same(t, w.c, donor.c.blocked[0])

	// Resolving the donor makes the forwarder adopt its outcome.
	donor.Process(9)
	require.Equal(t, KindSuccess, w.Kind())
	v, err := w.Value()
	require.NoError(t, err)
	require.Equal(t, 9, v)
}

func TestTransitionIntoItselfPanics(t *testing.T) {
	t.Parallel()

	w := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	require.Panics(t, func() { w.c.transition(w.c) })
}

func TestAddBlockedRejectsDuplicates(t *testing.T) {
	t.Parallel()

	src := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	dep := Bind(src, func(v int) Handle[int] { return Succeed(v) })

	require.Panics(t, func() { src.c.addBlocked(dep.c) })
}

func TestAddBlockedRejectsSelf(t *testing.T) {
	t.Parallel()

	src := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	require.Panics(t, func() { src.c.addBlocked(src.c) })
}

func TestAddBlockedRejectsTerminal(t *testing.T) {
	t.Parallel()

	done := Succeed(1)
	dep := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	require.Panics(t, func() { done.c.addBlocked(dep.c) })
}

// TestBlockedReRegistersOnWaitingUpstream drives the notification branch
// where resolution re-deferred across another hop: a blocked node told
// about a still-waiting upstream must park itself on that upstream
// instead of failing.
func TestBlockedReRegistersOnWaitingUpstream(t *testing.T) {
	t.Parallel()

	first := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	second := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	dep := Bind(first, func(v int) Handle[int] { return Succeed(v + 1) })

	next := dep.c.st.notified(dep.c, second.c)

	require.Nil(t, next)
	require.Equal(t, KindBlocked, dep.Kind())
	require.Same(t, dep.c, second.c.blocked[0])

	// The hop resolves and the dependent finally runs its continuation.
	second.Process(10)
	require.Equal(t, KindSuccess, dep.Kind())
	v, err := dep.Value()
	require.NoError(t, err)
	require.Equal(t, 11, v)
}

func TestBlockedNotifiedTwicePanics(t *testing.T) {
	t.Parallel()

	src := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	dep := Bind(src, func(v int) Handle[int] { return Succeed(v) })
	up := Succeed(3)

	require.Same(t, dep.c, dep.c.st.notified(dep.c, up.c))
	require.Panics(t, func() { dep.c.st.notified(dep.c, up.c) })
}

func TestNotifyRequiresSuccess(t *testing.T) {
	t.Parallel()

	w := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	require.Panics(t, func() { w.Notify() })

	require.NotPanics(t, func() { Succeed(1).Notify() })
}

func TestProcessOnTerminalPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Succeed(1).Process(3) })
	require.Panics(t, func() { Fail[int](errors.New("boom")).Process(3) })
}

func TestProcessConsumesResumeOnce(t *testing.T) {
	t.Parallel()

	w := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	w.Process(4)
	require.Panics(t, func() { w.c.st.process(w.c, 4) })
}

func TestValueOnPendingPanics(t *testing.T) {
	t.Parallel()

	w := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	require.Panics(t, func() { w.Value() })
}

// TestCancelResolvesWaiterAndCascades verifies the abandonment path: the
// waiter adopts the cancellation failure and every dependent built on it
// short-circuits to the same failure object with its continuation unrun.
func TestCancelResolvesWaiterAndCascades(t *testing.T) {
	t.Parallel()

	w := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	ran := false
	dep := Bind(w, func(v int) Handle[int] { ran = true; return Succeed(v) })

	w.Cancel()

	require.Equal(t, KindFailure, w.Kind())
	require.Equal(t, KindFailure, dep.Kind())
	require.False(t, ran)
	require.Empty(t, w.c.blocked)

	_, err := dep.Value()
	require.ErrorIs(t, err, api.ErrCancelled)
	require.Same(t, w.c.st, dep.c.st)
}

func TestCancelOnTerminalPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Succeed(1).Cancel() })
	require.Panics(t, func() { Fail[int](errors.New("boom")).Cancel() })
}

func TestCancelOnBlockedPanics(t *testing.T) {
	t.Parallel()

	src := Waiting(func(fd int) Handle[int] { return Succeed(fd) })
	dep := Bind(src, func(v int) Handle[int] { return Succeed(v) })
	require.Panics(t, func() { dep.Cancel() })
}

// TestFailureWalkSharesState verifies that failure propagation through a
// chain hands every downstream cell the same failure state rather than a
// copy, and drains every blocked list.
func TestFailureWalkSharesState(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := Waiting(func(fd int) Handle[int] { return Fail[int](boom) })
	mid := Bind(src, func(v int) Handle[int] { return Succeed(v) })
	end := Bind(mid, func(v int) Handle[int] { return Succeed(v) })

	src.Process(1)

	require.Equal(t, KindFailure, src.Kind())
	require.Equal(t, KindFailure, mid.Kind())
	require.Equal(t, KindFailure, end.Kind())
	require.Same(t, src.c.st, mid.c.st)
	require.Same(t, src.c.st, end.c.st)
	require.Empty(t, src.c.blocked)
	require.Empty(t, mid.c.blocked)

	_, err := end.Value()
	require.Same(t, boom, err)
}

func TestKindStrings(t *testing.T) {
	t.Parallel()

	require.Equal(t, "success", KindSuccess.String())
	require.Equal(t, "failure", KindFailure.String())
	require.Equal(t, "waiting", KindWaiting.String())
	require.Equal(t, "blocked", KindBlocked.String())
	require.True(t, KindSuccess.Terminal())
	require.True(t, KindFailure.Terminal())
	require.False(t, KindWaiting.Terminal())
	require.False(t, KindBlocked.Terminal())
}

func TestRefEqualityIsCellIdentity(t *testing.T) {
	t.Parallel()

	a := Succeed(1)
	b := Succeed(1)
	alias := a
	require.True(t, a.Ref == alias.Ref)
	require.False(t, a.Ref == b.Ref)
}

func TestStringFormat(t *testing.T) {
	t.Parallel()

	h := Succeed(1)
	require.Contains(t, h.String(), "success")
}
