// Package async implements a structured concurrency scope: a lexically
// bounded group of forked tasks whose results are consumed either all at
// once (AwaitAll) or lazily in completion order (Await).
//
// Grounded on the actor package's goroutine-ownership discipline
// (internal/goid) and on golang.org/x/sync/errgroup as the task-scope
// substrate (an indirect dependency of amp-labs-amp-common and
// Roasbeef-substrate), combined with a completion queue modeled on the
// spec's "handle_complete callback pushes into a queue" description.
package async

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arcway/actorkit/internal/goid"
)

// Scope forks and tracks computations of a single result type T (spec
// §3.4: "parameterized by a single exception variant per scope" — here,
// a single value type per scope). It binds to the goroutine that
// constructs it; Await/AwaitAll/Close are gated to that goroutine, while
// Async itself is not (spec §4.3.1: "forking from forked tasks is
// permitted").
type Scope[T any] struct {
	ownerGoroutine int64

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	mu         sync.Mutex
	outstanding int
	completed   []*Task[T] // completion order, appended by handleComplete
	cond        *sync.Cond

	closeOnce sync.Once
}

// New constructs a Scope bound to the calling goroutine.
func New[T any]() *Scope[T] {
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	s := &Scope[T]{
		ownerGoroutine: goid.Current(),
		ctx:            gctx,
		cancel:         cancel,
		group:          group,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *Scope[T]) checkOwner() error {
	if goid.Current() != s.ownerGoroutine {
		return fmt.Errorf("%w", ErrWrongThread)
	}
	return nil
}

// Async forks computation onto a new goroutine managed by the scope's
// errgroup substrate and returns a handle to its eventual outcome. Not
// gated on the owner goroutine.
func (s *Scope[T]) Async(computation func(ctx context.Context) (T, error)) *Task[T] {
	task := newTask[T]()

	s.mu.Lock()
	s.outstanding++
	s.mu.Unlock()

	s.group.Go(func() error {
		value, err := s.runComputation(computation)
		var result Result[T]
		switch {
		case s.ctx.Err() != nil && err == nil:
			// Scope was shut down while this computation was still
			// running but happened to finish cleanly right after;
			// spec §5 still counts it cancelled once shutdown has
			// begun.
			result = NewCancelled[T]()
		case err != nil:
			if s.ctx.Err() != nil {
				result = NewCancelled[T]()
			} else {
				result = NewFailed[T](err)
			}
		default:
			result = NewSuccess(value)
		}
		task.complete(result)
		s.handleComplete(task)
		// A task's failure stays in its own Result: reporting it to the
		// errgroup would cancel the scope's context (aborting peers) and
		// make AwaitAll return it.
		return nil
	})

	return task
}

// AsyncNamed forks computation exactly like Async and returns label
// unchanged alongside the Task; the label is not stored on the Task, and
// no invariant depends on it.
func (s *Scope[T]) AsyncNamed(label string, computation func(ctx context.Context) (T, error)) (*Task[T], string) {
	return s.Async(computation), label
}

func (s *Scope[T]) runComputation(computation func(ctx context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("async: task panicked: %v", r)
		}
	}()
	return computation(s.ctx)
}

// handleComplete pushes a finished task into the completion queue in
// finish order, waking any goroutine blocked in Stream.Next.
func (s *Scope[T]) handleComplete(t *Task[T]) {
	s.mu.Lock()
	s.completed = append(s.completed, t)
	s.outstanding--
	s.cond.Broadcast()
	s.mu.Unlock()
}

// AwaitAll blocks until every forked task has completed, then shuts the
// substrate scope. Owner-goroutine only.
func (s *Scope[T]) AwaitAll() error {
	if err := s.checkOwner(); err != nil {
		return err
	}
	err := s.group.Wait()
	s.Close()
	return err
}

// Await exposes the finite, completion-ordered sequence of Results to
// streamMapper, returns whatever streamMapper returns, then shuts the
// substrate scope and joins (spec §4.3.1). Owner-goroutine only.
func (s *Scope[T]) Await(streamMapper func(*Stream[T]) (any, error)) (any, error) {
	if err := s.checkOwner(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	size := s.outstanding + len(s.completed)
	s.mu.Unlock()

	stream := &Stream[T]{scope: s, remaining: size}
	value, mapErr := streamMapper(stream)

	s.Close()
	if mapErr != nil {
		return value, mapErr
	}
	return value, nil
}

// Close releases the substrate scope, cancelling any in-flight task. Safe
// to call more than once (spec §9: "an implementer should choose
// idempotent-safe semantics" — here, via sync.Once).
func (s *Scope[T]) Close() error {
	if err := s.checkOwner(); err != nil {
		return err
	}
	s.closeOnce.Do(func() {
		s.cancel()
		_ = s.group.Wait()
	})
	return nil
}
