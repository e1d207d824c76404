package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadinessResolve(t *testing.T) {
	r := NewReadiness()
	assert.False(t, r.Ready())

	r.Resolve(nil)
	assert.True(t, r.Ready())
	assert.NoError(t, r.Wait(context.Background()))
}

func TestReadinessResolveWithError(t *testing.T) {
	r := NewReadiness()
	cause := errors.New("connect: connection refused")

	r.Resolve(cause)
	assert.False(t, r.Ready())
	assert.ErrorIs(t, r.Wait(context.Background()), cause)
}

func TestReadinessResolveIsOnce(t *testing.T) {
	r := NewReadiness()
	r.Resolve(errors.New("first"))
	r.Resolve(nil)

	require.Error(t, r.Wait(context.Background()))
	assert.False(t, r.Ready())
}

func TestReadinessWaitTimeout(t *testing.T) {
	r := NewReadiness()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReadinessWaitUnblocksWaiters(t *testing.T) {
	r := NewReadiness()

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			done <- r.Wait(context.Background())
		}()
	}

	r.Resolve(nil)
	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("waiter did not unblock")
		}
	}
}
