package actor

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func timeoutCh(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}
