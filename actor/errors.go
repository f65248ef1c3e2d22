package actor

import (
	"errors"
	"fmt"
)

// Usage errors surfaced directly to callers (spec §6, §7 taxonomy 1).
// The runtime never catches these itself.
var (
	// ErrIllegalState covers the precondition family: wrong goroutine,
	// wrong Actor.State, missing behavior factory, self-signal, and
	// behavior-type non-conformance.
	ErrIllegalState = errors.New("actor: illegal state")

	// ErrAlreadySet is returned when Behavior is called twice on the
	// same Actor.
	ErrAlreadySet = errors.New("actor: already set")

	// ErrNoBehavior is returned when an actor is started, or spawned,
	// without a behavior factory configured. It wraps ErrIllegalState.
	ErrNoBehavior = fmt.Errorf("%w: behavior factory not set", ErrIllegalState)

	// ErrSelfSignal is returned by SignalActor when target == the
	// calling actor itself. It wraps ErrIllegalState.
	ErrSelfSignal = fmt.Errorf("%w: cannot signal self", ErrIllegalState)

	// ErrNotBound is returned when a context operation that requires a
	// bound current actor is invoked without one (e.g. from a
	// StartContext, or after CurrentActor narrowing fails to find a
	// binding at all).
	ErrNotBound = errors.New("actor: no current actor bound")
)

// panicError carries the exception passed to Context.Panic through a Go
// panic/recover round trip, so applyMessage can tell a deliberate
// Context.Panic(err) apart from an unrelated runtime panic.
type panicError struct{ err error }

func (p panicError) Error() string { return p.err.Error() }
func (p panicError) Unwrap() error { return p.err }
