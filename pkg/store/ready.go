package store

import (
	"context"
	"fmt"
	"sync"
)

// Readiness is a one-shot signal that the remote store finished its
// startup checks. Resolve is called once; any number of goroutines may
// Wait with their own timeout.
type Readiness struct {
	once sync.Once
	done chan struct{}
	err  error
}

// NewReadiness creates an unresolved readiness signal.
func NewReadiness() *Readiness {
	return &Readiness{done: make(chan struct{})}
}

// Resolve records the startup outcome. Subsequent calls are no-ops.
func (r *Readiness) Resolve(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Wait blocks until the store is ready or the context expires.
func (r *Readiness) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for store readiness: %w", ctx.Err())
	}
}

// Ready reports whether the signal has resolved without error.
func (r *Readiness) Ready() bool {
	select {
	case <-r.done:
		return r.err == nil
	default:
		return false
	}
}
