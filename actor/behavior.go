package actor

import "fmt"

// Behavior is the capability set a running actor's current instance
// implements. The runtime treats it as opaque — only CurrentActor narrows
// it, and only back to whatever concrete type the caller names.
type Behavior = interface{}

// BehaviorFactory builds a fresh Behavior instance. It is invoked once on
// start, and again on every Restart.
type BehaviorFactory func(Context) Behavior

// Starter is implemented by behaviors that need to run setup once the
// actor is RUNNING but before its first queued message is applied —
// e.g. capturing Context.Self() or kicking off a background ticker.
// OnStart runs again on each behavior rebuilt by a restart.
// Grounded on the teacher's universal habit of reacting to a Started
// system message (bollywood.Started{}) for exactly this purpose; here it
// is a typed hook rather than a message, so it cannot be confused with
// the closed Signal variant.
type Starter interface {
	OnStart(Context)
}

// Message is a deliverable unit applied to a Behavior (spec §3.2). Build
// one with Apply for compile-time typing against a concrete behavior.
type Message func(Behavior) error

// Apply adapts a typed handler into a Message, performing the narrowing
// type assertion that the runtime itself otherwise treats as opaque.
func Apply[B any](fn func(B) error) Message {
	return func(b Behavior) error {
		typed, ok := b.(B)
		if !ok {
			return fmt.Errorf("%w: behavior is %T, want %T", ErrIllegalState, b, typed)
		}
		return fn(typed)
	}
}
