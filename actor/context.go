package actor

import (
	"fmt"

	"github.com/arcway/actorkit/internal/goid"
)

// StartContext is handed to Run's bootstrap function. It may only post
// messages to already-started actors — bootstrap code has no actor of
// its own bound to it.
type StartContext interface {
	PostTo(target *Actor, msg Message) error
}

// Context is visible inside a running Behavior. It narrows StartContext
// by adding the operations that require a bound current actor.
type Context interface {
	StartContext

	// Self returns the actor this context is bound to.
	Self() *Actor

	// Spawn starts a child actor from inside the current actor's
	// behavior. The parent automatically gains a signal handler that
	// forwards any signal it receives to the child (spec §4.1.5).
	Spawn(child *Actor) error

	// Shutdown posts a shutdown signal to the current actor's own
	// mailbox. Fire-and-forget: it does not wait for handlers to run.
	Shutdown()

	// SignalActor posts a signal to another actor and blocks until that
	// actor's signal handlers have all run.
	SignalActor(target *Actor, sig Signal) error

	// Panic aborts the message currently being applied, carrying err to
	// the actor's signal handlers as a PanicSignal. Never returns.
	Panic(err error)
}

// HandlerContext is visible inside a signal handler. It narrows Context
// by adding Restart, which is only meaningful during signal processing.
type HandlerContext interface {
	Context

	// Restart requests that the mailbox loop clear pending messages and
	// rebuild the behavior from its factory, instead of terminating.
	// Valid only when called from inside a signal handler.
	Restart() error
}

// actorContext is the single concrete implementation behind all three
// capability views (spec §4.2): the narrower interfaces exist purely to
// restrict what each caller may invoke.
type actorContext struct {
	actor            *Actor
	inHandler        bool
	restartRequested bool
}

func (c *actorContext) Self() *Actor { return c.actor }

func (c *actorContext) PostTo(target *Actor, msg Message) error {
	return postTo(target, msg)
}

func postTo(target *Actor, msg Message) error {
	if target == nil {
		return fmt.Errorf("%w: PostTo target is nil", ErrIllegalState)
	}
	if msg == nil {
		return fmt.Errorf("%w: PostTo message is nil", ErrIllegalState)
	}
	target.mbox.push(envelope{user: msg})
	return nil
}

func (c *actorContext) Spawn(child *Actor) error {
	parent := c.actor
	if parent == nil {
		return fmt.Errorf("%w: spawn requires a bound current actor", ErrNotBound)
	}
	if child == nil {
		return fmt.Errorf("%w: spawn target is nil", ErrIllegalState)
	}
	// spec §3.1/§4.1.1 gate spawn on "child's owner thread is the
	// parent's owner thread". A parent's behavior runs on its own
	// dedicated goroutine, separate from whatever goroutine called
	// Actor.Of on the parent itself — so the only construction of that
	// precondition under which dynamic, in-behavior spawning (spec
	// scenario 4, "Manager spawns child") is possible at all is: the
	// child must have been constructed (Of called) on the goroutine
	// that is, right now, executing the parent's behavior. Spawn is only
	// reachable through a Context bound to that goroutine, so comparing
	// against goid.Current() here is exactly that check.
	if child.ownerGoroutine != goid.Current() {
		return fmt.Errorf("%w: child must be constructed on the parent's own executing goroutine", ErrIllegalState)
	}
	if child.factory == nil {
		return fmt.Errorf("%w: child %s has no behavior factory", ErrNoBehavior, child.name)
	}
	if child.State() != Created {
		return fmt.Errorf("%w: child %s is not in Created state", ErrIllegalState, child.name)
	}

	// Cascade: whatever signal the parent receives, forward it to the
	// child and wait for the child's handlers to finish before the
	// parent's own handler chain is considered done (spec §4.1.5).
	// Installed by append, so children shut down in spawn order — the
	// source's own behavior per spec §9, reproduced rather than "fixed".
	parent.handlers.append(func(hctx HandlerContext, sig Signal) {
		_ = hctx.SignalActor(child, sig)
	})

	return child.start()
}

func (c *actorContext) Shutdown() {
	c.actor.mbox.push(envelope{signal: &signalEnvelope{sig: ShutdownSignal()}})
}

func (c *actorContext) SignalActor(target *Actor, sig Signal) error {
	if target == nil {
		return fmt.Errorf("%w: signal target is nil", ErrIllegalState)
	}
	if target == c.actor {
		return fmt.Errorf("%w: an actor cannot signal itself", ErrSelfSignal)
	}

	done := make(chan struct{})
	if !target.mbox.push(envelope{signal: &signalEnvelope{sig: sig, done: done}}) {
		// Target already terminated; its handlers have already run to
		// completion, so the happens-before edge is trivially satisfied.
		return nil
	}
	<-done
	return nil
}

func (c *actorContext) Panic(err error) {
	panic(panicError{err: err})
}

func (c *actorContext) Restart() error {
	if !c.inHandler {
		return fmt.Errorf("%w: Restart is only valid from inside a signal handler", ErrIllegalState)
	}
	c.restartRequested = true
	return nil
}

// CurrentActor returns ctx's bound actor, failing unless its live
// behavior conforms to B (spec §4.1.1's "checked against the given
// behavior type"). B is the narrowing type tag; Go's generics make the
// runtime conformance check a plain type assertion.
func CurrentActor[B any](ctx Context) (*Actor, error) {
	self := ctx.Self()
	if self == nil {
		return nil, fmt.Errorf("%w", ErrNotBound)
	}
	if _, ok := self.behaviorSnapshot().(B); !ok {
		var want B
		return nil, fmt.Errorf("%w: behavior %T does not conform to %T", ErrIllegalState, self.behaviorSnapshot(), want)
	}
	return self, nil
}
