package async

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultAccessors(t *testing.T) {
	s := NewSuccess(7)
	v, ok := s.Value()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.True(t, s.IsSuccess())

	f := NewFailed[int](errors.New("boom"))
	_, ok = f.Value()
	assert.False(t, ok)
	err, ok := f.Failure()
	assert.True(t, ok)
	assert.EqualError(t, err, "boom")

	c := NewCancelled[int]()
	assert.True(t, c.IsCancelled())
}

func TestMergeSuccessSuccessCombines(t *testing.T) {
	a := NewSuccess(2)
	b := NewSuccess(3)
	merged := Merge(a, b, func(x, y int) int { return x + y })
	v, ok := merged.Value()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestMergeSuccessDominatesFailedAndCancelled(t *testing.T) {
	ok := NewSuccess(1)
	failed := NewFailed[int](errors.New("x"))
	cancelled := NewCancelled[int]()

	combine := func(x, y int) int { return x + y }

	r1 := Merge(ok, failed, combine)
	assert.True(t, r1.IsSuccess())

	r2 := Merge(failed, ok, combine)
	assert.True(t, r2.IsSuccess())

	r3 := Merge(ok, cancelled, combine)
	assert.True(t, r3.IsSuccess())
}

func TestMergeFailedFailedSuppressesSecond(t *testing.T) {
	first := NewFailed[int](errors.New("first"))
	second := NewFailed[int](errors.New("second"))

	merged := Merge(first, second, func(x, y int) int { return x + y })
	err, ok := merged.Failure()
	assert.True(t, ok)
	assert.EqualError(t, err, "first")
	assert.Len(t, merged.Suppressed(), 1)
	assert.EqualError(t, merged.Suppressed()[0], "second")
}

func TestMergeFailedDominatesCancelled(t *testing.T) {
	failed := NewFailed[int](errors.New("x"))
	cancelled := NewCancelled[int]()

	combine := func(x, y int) int { return x + y }
	assert.True(t, Merge(failed, cancelled, combine).IsFailed())
	assert.True(t, Merge(cancelled, failed, combine).IsFailed())
}

func TestMergeCancelledCancelled(t *testing.T) {
	a := NewCancelled[int]()
	b := NewCancelled[int]()
	merged := Merge(a, b, func(x, y int) int { return x + y })
	assert.True(t, merged.IsCancelled())
}
