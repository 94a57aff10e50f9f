// File: promise/bind.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package promise

// Bind chains f onto src: run f against the payload once src succeeds,
// propagate failure otherwise. Bind never suspends the caller. A source
// already resolved dispatches immediately; a pending source yields a
// blocked handle registered on it, resolved later by the completion
// cascade.
func Bind[S, T any](src Handle[S], f func(S) Handle[T]) Handle[T] {
	if f == nil {
		panic("promise: Bind with nil continuation")
	}
	switch st := src.c.st.(type) {
	case *successState[S]:
		return f(st.value)
	case *failureState:
		return Handle[T]{newRef(st)}
	}
	b := &blockedState[S, T]{sid: nextStateID(), conts: []func(S) Handle[T]{f}}
	h := Handle[T]{newRef(b)}
	src.c.addBlocked(h.c)
	return h
}

// Then chains f onto src, discarding the source payload.
func Then[S, T any](src Handle[S], f func() Handle[T]) Handle[T] {
	if f == nil {
		panic("promise: Then with nil continuation")
	}
	return Bind(src, func(S) Handle[T] { return f() })
}

// Map chains a plain function onto src, wrapping its result.
func Map[S, T any](src Handle[S], f func(S) T) Handle[T] {
	if f == nil {
		panic("promise: Map with nil function")
	}
	return Bind(src, func(v S) Handle[T] { return Succeed(f(v)) })
}

// Combine chains every continuation onto src at once. Each one runs
// against the same success payload, and the candidate results reduce left
// to right with aggregate into the combined handle. Failure of the source
// propagates without invoking any continuation.
func Combine[S, T any](src Handle[S], fs ...func(S) Handle[T]) Handle[T] {
	if len(fs) == 0 {
		panic("promise: Combine with no continuations")
	}
	for _, f := range fs {
		if f == nil {
			panic("promise: Combine with nil continuation")
		}
	}
	switch st := src.c.st.(type) {
	case *successState[S]:
		return runAll(fs, st.value)
	case *failureState:
		return Handle[T]{newRef(st)}
	}
	b := &blockedState[S, T]{sid: nextStateID(), conts: fs}
	h := Handle[T]{newRef(b)}
	src.c.addBlocked(h.c)
	return h
}

// runAll invokes every continuation against v and reduces the candidate
// results left to right.
func runAll[S, T any](fs []func(S) Handle[T], v S) Handle[T] {
	combined := fs[0](v)
	for _, f := range fs[1:] {
		combined = aggregate(combined, f(v))
	}
	return combined
}

// aggregate reduces two candidate results into one: the first operand
// wins while it is failed or still pending, two successes reduce to the
// right operand.
func aggregate[T any](a, b Handle[T]) Handle[T] {
	if a.Kind() != KindSuccess {
		return a
	}
	return b
}
