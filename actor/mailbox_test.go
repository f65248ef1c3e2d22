package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailboxFIFOOrdering(t *testing.T) {
	m := newMailbox()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		ok := m.push(envelope{user: func(Behavior) error {
			order = append(order, i)
			return nil
		}})
		assert.True(t, ok)
	}

	for i := 0; i < 5; i++ {
		env, ok := m.take()
		assert.True(t, ok)
		assert.NoError(t, env.user(nil))
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestMailboxPushNeverFailsUntilClosed(t *testing.T) {
	m := newMailbox()
	assert.True(t, m.push(envelope{user: func(Behavior) error { return nil }}))
	m.close()
	assert.False(t, m.push(envelope{user: func(Behavior) error { return nil }}))
}

func TestMailboxDrainEmptiesQueue(t *testing.T) {
	m := newMailbox()
	m.push(envelope{user: func(Behavior) error { return nil }})
	m.push(envelope{user: func(Behavior) error { return nil }})
	m.drain()

	m.push(envelope{user: func(Behavior) error { return nil }})
	_, ok := m.take()
	assert.True(t, ok)

	// queue should now be empty again: the envelope pushed after drain
	// was the only one left. (close itself discards whatever is queued,
	// so the take below only confirms the closed state.)
	assert.Empty(t, m.queue)
	m.close()
	_, ok = m.take()
	assert.False(t, ok)
}

func TestMailboxTakeBlocksUntilPush(t *testing.T) {
	m := newMailbox()
	done := make(chan envelope, 1)
	go func() {
		env, ok := m.take()
		if ok {
			done <- env
		}
	}()

	m.push(envelope{user: func(Behavior) error { return nil }})
	select {
	case <-done:
	case <-timeoutCh(t):
		t.Fatal("take() did not unblock after push")
	}
}
