package async

import "errors"

var (
	// ErrWrongThread is raised when a Scope or Stream method gated to the
	// owner goroutine is called from any other goroutine (spec §4.3.1,
	// §4.3.3 "gated to owner thread").
	ErrWrongThread = errors.New("async: called from a non-owner goroutine")

	// ErrNotDone is raised by Task.Result/Task.GetNow before the task has
	// completed (spec §4.3.2 "fail loudly").
	ErrNotDone = errors.New("async: task is not done")

	// ErrCancelUnsupported is always returned by Task.Cancel: cancellation
	// comes only from Scope shutdown (spec §4.3.2, §4.3.1 edge cases).
	ErrCancelUnsupported = errors.New("async: task cancellation is not supported, only scope shutdown cancels tasks")

	// ErrCancelled is the failure value surfaced by Get/GetNow/GetWithTimeout
	// when a task's Result is Cancelled.
	ErrCancelled = errors.New("async: task was cancelled")

	// ErrTimeout is raised by Task.GetWithTimeout when the deadline elapses
	// before the task completes (spec §4.3.2 "standard task-style semantics
	// including timeout failure"). The task itself is not cancelled.
	ErrTimeout = errors.New("async: timed out waiting for task")

	// ErrStreamExhausted is returned by Stream.Next once every forked task
	// has already been delivered.
	ErrStreamExhausted = errors.New("async: stream exhausted")
)
