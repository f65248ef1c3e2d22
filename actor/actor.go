// Package actor implements a lightweight actor runtime: autonomous units
// of computation, identified by name, that communicate exclusively by
// posting messages to each other's mailboxes and process them one at a
// time on their own goroutine.
//
// Grounded on the bollywood actor engine (Engine/PID/Props/Context,
// vendored into the lguibr/pongo game server), generalized from
// bollywood's single Receive(ctx) switch into the spec's closure-based
// messages, explicit signal handler chain, and parent/child shutdown
// cascade.
package actor

import (
	"fmt"
	"os"
	"reflect"
	"runtime/debug"
	"sync/atomic"

	"github.com/arcway/actorkit/internal/goid"
)

// State is an actor's lifecycle stage. Transitions are monotonic:
// Created -> Running -> Shutdown, never observed to go backward.
type State int32

const (
	Created State = iota
	Running
	Shutdown
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

var actorCounter uint64

// nextName derives "<BehaviorTypeName>-<n>", generalizing bollywood's
// Engine.nextPID counter-based "actor-<n>" naming to embed the behavior
// type, matching game_actor.go's habit of logging actors by type.
func nextName(behaviorType reflect.Type) string {
	n := atomic.AddUint64(&actorCounter, 1)
	label := "actor"
	if behaviorType != nil {
		if behaviorType.Kind() == reflect.Ptr {
			label = behaviorType.Elem().Name()
		} else {
			label = behaviorType.Name()
		}
		if label == "" {
			label = behaviorType.String()
		}
	}
	return fmt.Sprintf("%s-%d", label, n)
}

// Actor is a single actor instance: identity, mailbox, behavior factory,
// signal handler chain, and lifecycle state (spec §3.1).
type Actor struct {
	name         string
	behaviorType reflect.Type

	ownerGoroutine int64

	factory  BehaviorFactory
	behavior Behavior // touched only by this actor's own goroutine

	mbox     *mailbox
	handlers *handlerChain

	state atomic.Int32
	done  chan struct{}
}

// Of creates an actor whose behavior will be of type B. The name is
// caller-chosen, or derived from B's type name plus a process-wide
// counter when omitted. Of never fails.
func Of[B any](name ...string) *Actor {
	var zero B
	t := reflect.TypeOf(zero)

	a := &Actor{
		behaviorType:   t,
		ownerGoroutine: goid.Current(),
		mbox:           newMailbox(),
		handlers:       newHandlerChain(),
		done:           make(chan struct{}),
	}
	a.state.Store(int32(Created))

	if len(name) > 0 && name[0] != "" {
		a.name = name[0]
	} else {
		a.name = nextName(t)
	}
	return a
}

// Name returns the actor's identity.
func (a *Actor) Name() string { return a.name }

// State returns the actor's current lifecycle stage.
func (a *Actor) State() State { return State(a.state.Load()) }

func (a *Actor) behaviorSnapshot() Behavior { return a.behavior }

// Behavior sets the factory used to build (and, on restart, rebuild) this
// actor's behavior. It must be called from the owner goroutine while the
// actor is Created, and only once.
func (a *Actor) Behavior(factory BehaviorFactory) error {
	if factory == nil {
		return fmt.Errorf("%w: behavior factory is nil", ErrIllegalState)
	}
	if goid.Current() != a.ownerGoroutine {
		return fmt.Errorf("%w: Behavior must be called from the owner goroutine", ErrIllegalState)
	}
	if a.State() != Created {
		return fmt.Errorf("%w: Behavior requires state Created", ErrIllegalState)
	}
	if a.factory != nil {
		return fmt.Errorf("%w: behavior factory already set on %s", ErrAlreadySet, a.name)
	}
	a.factory = factory
	return nil
}

// OnSignal appends a signal handler. Same preconditions as Behavior.
func (a *Actor) OnSignal(handler SignalHandler) error {
	if handler == nil {
		return fmt.Errorf("%w: signal handler is nil", ErrIllegalState)
	}
	if goid.Current() != a.ownerGoroutine {
		return fmt.Errorf("%w: OnSignal must be called from the owner goroutine", ErrIllegalState)
	}
	if a.State() != Created {
		return fmt.Errorf("%w: OnSignal requires state Created", ErrIllegalState)
	}
	a.handlers.append(handler)
	return nil
}

// start performs the CREATED->RUNNING transition and launches the
// actor's goroutine. It is invoked by Run and by Spawn — never both for
// the same actor, since the CAS makes a double-start a hard failure.
func (a *Actor) start() error {
	if a.factory == nil {
		return fmt.Errorf("%w: %s has no behavior factory", ErrNoBehavior, a.name)
	}
	if !a.state.CompareAndSwap(int32(Created), int32(Running)) {
		return fmt.Errorf("%w: %s already started", ErrIllegalState, a.name)
	}
	go a.runLoop()
	return nil
}

// runLoop is the mailbox loop described in spec §4.1.2. It runs on the
// actor's single goroutine for the actor's entire lifetime (across any
// number of restarts).
func (a *Actor) runLoop() {
	ctx := &actorContext{actor: a}
	a.behavior = a.factory(ctx)
	a.invokeStart(ctx)

	for {
		env, ok := a.mbox.take()
		if !ok {
			// Mailbox closed without a signal in flight: nothing left to
			// run handlers over, but the actor still needs to reach
			// Shutdown.
			a.terminate()
			return
		}

		if env.signal != nil {
			if a.invokeHandlers(ctx, env.signal) {
				continue
			}
			a.terminate()
			return
		}

		if err := a.applyMessage(env.user); err != nil {
			if a.invokeHandlers(ctx, &signalEnvelope{sig: PanicSignal(err)}) {
				continue
			}
			a.terminate()
			return
		}
	}
}

func (a *Actor) invokeStart(ctx *actorContext) {
	if starter, ok := a.behavior.(Starter); ok {
		starter.OnStart(ctx)
	}
}

// applyMessage runs a user message against the live behavior, converting
// both a returned error and a Context.Panic-induced panic into a single
// error return (spec §4.1.2 step 4).
func (a *Actor) applyMessage(msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "actor %s: panic: %v\n%s\n", a.name, r, debug.Stack())
			if pe, ok := r.(panicError); ok {
				err = pe.err
				return
			}
			err = fmt.Errorf("actor: panic: %v", r)
		}
	}()
	return msg(a.behavior)
}

// invokeHandlers runs every signal handler in insertion order (spec
// §4.1.3). A handler that panics is logged and does not block later
// handlers (spec §7 taxonomy 4). It reports whether a handler requested
// a restart via HandlerContext.Restart.
//
// Per spec §4.1.3 the actor is, conceptually, already terminated for the
// benefit of handlers reacting to this signal. Reconciling that with
// §8's monotonicity invariant ("state transitions ... never observed to
// go backward") and with the restart scenario (§8 scenario 6, where the
// actor keeps processing messages after a handler calls Restart): the
// publicly observable State is committed to Shutdown only once restart
// is confirmed not to have been requested — see DESIGN.md.
func (a *Actor) invokeHandlers(ctx *actorContext, se *signalEnvelope) (restarted bool) {
	ctx.inHandler = true
	ctx.restartRequested = false

	for _, h := range a.handlers.snapshot() {
		invokeOneHandler(a, ctx, h, se.sig)
	}

	ctx.inHandler = false
	restarted = ctx.restartRequested

	// Drain and rebuild before unblocking any synchronous sender waiting
	// on se.done: a sender that resumes immediately after Restart is
	// requested must see an already-drained mailbox, or messages it
	// posts right after SignalActor returns could race the drain and be
	// discarded along with the ones genuinely queued before restart.
	if restarted {
		a.mbox.drain()
		a.behavior = a.factory(ctx)
		a.invokeStart(ctx)
	}

	if se.done != nil {
		close(se.done)
	}
	return restarted
}

func invokeOneHandler(a *Actor, ctx *actorContext, h SignalHandler, sig Signal) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "actor %s: signal handler panicked: %v\n%s\n", a.name, r, debug.Stack())
		}
	}()
	h(ctx, sig)
}

func (a *Actor) terminate() {
	a.state.Store(int32(Shutdown))
	a.mbox.close()
	close(a.done)
}

// Run starts every listed actor, hands bootstrap a StartContext, and
// blocks until every started actor has terminated. It validates the
// owner goroutine and the presence of a behavior factory for every actor
// before starting any of them (spec §4.1.1).
func Run(actors []*Actor, bootstrap func(StartContext)) error {
	caller := goid.Current()
	for _, a := range actors {
		if a.ownerGoroutine != caller {
			return fmt.Errorf("%w: actor %s owned by a different goroutine", ErrIllegalState, a.name)
		}
		if a.factory == nil {
			return fmt.Errorf("%w: actor %s has no behavior factory", ErrNoBehavior, a.name)
		}
	}

	for _, a := range actors {
		if err := a.start(); err != nil {
			return err
		}
	}

	if bootstrap != nil {
		bootstrap(startContext{})
	}

	for _, a := range actors {
		<-a.done
	}
	return nil
}

// startContext is the StartContext handed to Run's bootstrap: it has no
// current actor bound, so it can only post to already-started actors.
type startContext struct{}

func (startContext) PostTo(target *Actor, msg Message) error {
	return postTo(target, msg)
}
