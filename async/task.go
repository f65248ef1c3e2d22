package async

import (
	"fmt"
	"sync"
	"time"
)

// Task is the handle returned by Scope.Async, wrapping the outcome of one
// errgroup-forked goroutine (spec §4.3.2). errgroup itself only exposes an
// aggregate Wait, so Task is the additive plumbing that gives each forked
// computation its own done-channel and stored Result.
type Task[T any] struct {
	done chan struct{}

	mu     sync.Mutex
	result Result[T]
	set    bool
}

func newTask[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

// complete is called exactly once by the goroutine Scope.Async forked,
// after the computation returns.
func (t *Task[T]) complete(r Result[T]) {
	t.mu.Lock()
	t.result = r
	t.set = true
	t.mu.Unlock()
	close(t.done)
}

// IsDone reports whether the task has completed, successfully, with a
// failure, or by cancellation.
func (t *Task[T]) IsDone() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// IsCancelled reports whether the task's outcome is Cancelled. Per spec
// §9 this consults the task's own bookkeeping directly rather than any
// underlying future's cancellation flag — there is no separate substrate
// future here to diverge from, so this is simply Result.IsCancelled once
// done, false otherwise.
func (t *Task[T]) IsCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.set && t.result.kind == Cancelled
}

// Result returns the task's outcome if done, or ErrNotDone if the task is
// still running (spec §4.3.2 "fail loudly").
func (t *Task[T]) Result() (Result[T], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.set {
		var zero Result[T]
		return zero, ErrNotDone
	}
	return t.result, nil
}

// Get blocks until the task completes and returns its value, or the
// failure/cancellation error.
func (t *Task[T]) Get() (T, error) {
	<-t.done
	return t.resolve()
}

// GetWithTimeout blocks until the task completes or timeout elapses,
// whichever comes first. A timeout does not cancel the task.
func (t *Task[T]) GetWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-t.done:
		return t.resolve()
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// GetNow returns the value immediately if the task is done, raising its
// failure or ErrCancelled as appropriate; it fails loudly with ErrNotDone
// if the task has not completed yet (spec §4.3.2).
func (t *Task[T]) GetNow() (T, error) {
	if !t.IsDone() {
		var zero T
		return zero, ErrNotDone
	}
	return t.resolve()
}

func (t *Task[T]) resolve() (T, error) {
	r, err := t.Result()
	if err != nil {
		var zero T
		return zero, err
	}
	switch r.kind {
	case Success:
		return r.value, nil
	case Cancelled:
		var zero T
		return zero, ErrCancelled
	default:
		var zero T
		return zero, r.err
	}
}

// Cancel is unsupported: cancellation comes only from Scope shutdown
// (spec §4.3.2, §9 edge cases).
func (t *Task[T]) Cancel() error {
	return fmt.Errorf("%w", ErrCancelUnsupported)
}
