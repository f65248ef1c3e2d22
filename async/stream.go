package async

import "fmt"

// Stream is the finite, completion-order sequence of Results produced by
// Scope.Await (spec §4.3.3). It is not restartable: each Next call
// consumes one element, and every advance and size query is gated to the
// scope's owner goroutine.
type Stream[T any] struct {
	scope     *Scope[T]
	remaining int
	delivered int
}

// Len returns the number of elements not yet delivered.
func (s *Stream[T]) Len() (int, error) {
	if err := s.scope.checkOwner(); err != nil {
		return 0, err
	}
	return s.remaining - s.delivered, nil
}

// Next blocks for the next task to complete (in completion order) and
// returns its Result. It returns ErrStreamExhausted once every task
// forked at the moment Await began has already been delivered.
func (s *Stream[T]) Next() (Result[T], error) {
	if err := s.scope.checkOwner(); err != nil {
		var zero Result[T]
		return zero, err
	}
	if s.delivered >= s.remaining {
		var zero Result[T]
		return zero, fmt.Errorf("%w", ErrStreamExhausted)
	}

	sc := s.scope
	sc.mu.Lock()
	for s.delivered >= len(sc.completed) {
		sc.cond.Wait()
	}
	task := sc.completed[s.delivered]
	sc.mu.Unlock()

	s.delivered++
	result, _ := task.Result()
	return result, nil
}
