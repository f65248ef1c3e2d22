package actor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopBehavior struct{}

func TestRunRequiresBehaviorFactory(t *testing.T) {
	a := Of[*noopBehavior]("needs-behavior")
	err := Run([]*Actor{a}, func(StartContext) {})
	assert.ErrorIs(t, err, ErrNoBehavior)
}

func TestBehaviorRejectsNilFactory(t *testing.T) {
	a := Of[*noopBehavior]("a")
	err := a.Behavior(nil)
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestBehaviorCannotBeSetTwice(t *testing.T) {
	a := Of[*noopBehavior]("a")
	require.NoError(t, a.Behavior(func(Context) Behavior { return &noopBehavior{} }))
	err := a.Behavior(func(Context) Behavior { return &noopBehavior{} })
	assert.ErrorIs(t, err, ErrAlreadySet)
}

func TestOnSignalRejectsAfterStart(t *testing.T) {
	a := Of[*noopBehavior]("a")
	require.NoError(t, a.Behavior(func(Context) Behavior { return &noopBehavior{} }))

	done := make(chan struct{})
	err := Run([]*Actor{a}, func(start StartContext) {
		require.NoError(t, start.PostTo(a, Apply(func(n *noopBehavior) error {
			return nil
		})))
		require.NoError(t, start.PostTo(a, Apply(func(n *noopBehavior) error {
			close(done)
			return errFatal // force termination so Run can return
		})))
	})
	require.NoError(t, err)
	<-done

	err = a.OnSignal(func(HandlerContext, Signal) {})
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestSignalActorRejectsSelf(t *testing.T) {
	a := Of[*noopBehavior]("self")
	require.NoError(t, a.Behavior(func(Context) Behavior { return &noopBehavior{} }))

	err := Run([]*Actor{a}, func(start StartContext) {
		require.NoError(t, start.PostTo(a, Apply(func(n *noopBehavior) error {
			return errFatal // force termination so Run can return
		})))
	})
	require.NoError(t, err)

	ctx := &actorContext{actor: a}
	assert.ErrorIs(t, ctx.SignalActor(a, ShutdownSignal()), ErrSelfSignal)
}

func TestCurrentActorConformanceCheck(t *testing.T) {
	a := Of[*noopBehavior]("typed")
	require.NoError(t, a.Behavior(func(Context) Behavior { return &noopBehavior{} }))

	err := Run([]*Actor{a}, func(start StartContext) {
		require.NoError(t, start.PostTo(a, Apply(func(n *noopBehavior) error {
			return errFatal // force termination so Run can return
		})))
	})
	require.NoError(t, err)

	ctx := &actorContext{actor: a}
	self, typeErr := CurrentActor[*noopBehavior](ctx)
	assert.NoError(t, typeErr)
	assert.Same(t, a, self)

	_, typeErr = CurrentActor[*helloBehavior](ctx)
	assert.True(t, errors.Is(typeErr, ErrIllegalState))
}

func TestPostToNilTargetFails(t *testing.T) {
	ctx := &actorContext{}
	err := ctx.PostTo(nil, func(Behavior) error { return nil })
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestStateStringValues(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "shutdown", Shutdown.String())
}

func TestPostingAfterShutdownIsSilentlyDiscarded(t *testing.T) {
	a := Of[*noopBehavior]("a")
	require.NoError(t, a.Behavior(func(Context) Behavior { return &noopBehavior{} }))

	err := Run([]*Actor{a}, func(start StartContext) {
		require.NoError(t, start.PostTo(a, Apply(func(n *noopBehavior) error {
			return errFatal
		})))
	})
	require.NoError(t, err)
	assert.Equal(t, Shutdown, a.State())

	assert.NotPanics(t, func() {
		err := postTo(a, Apply(func(n *noopBehavior) error { return nil }))
		assert.NoError(t, err)
	})
}
