package store

import (
	"context"
	"sync"

	"github.com/aquasense/aquasense-engine/pkg/apperrors"
	"github.com/aquasense/aquasense-engine/pkg/models"
)

// Lazy is a TabularStore whose backing connection is established in the
// background after the server starts. Calls made before the connection
// resolves fail with ErrStoreUnavailable; callers are expected to gate on
// the Readiness signal first.
type Lazy struct {
	mu        sync.RWMutex
	inner     TabularStore
	readiness *Readiness
}

var _ TabularStore = (*Lazy)(nil)

// NewLazy creates an unresolved lazy store.
func NewLazy(readiness *Readiness) *Lazy {
	return &Lazy{readiness: readiness}
}

// Resolve installs the connected store (or records the connection
// failure) and fires the readiness signal.
func (l *Lazy) Resolve(inner TabularStore, err error) {
	l.mu.Lock()
	l.inner = inner
	l.mu.Unlock()
	l.readiness.Resolve(err)
}

// Readiness exposes the startup signal for awaiters.
func (l *Lazy) Readiness() *Readiness {
	return l.readiness
}

func (l *Lazy) get() (TabularStore, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.inner == nil {
		return nil, apperrors.ErrStoreUnavailable
	}
	return l.inner, nil
}

func (l *Lazy) InsertRows(ctx context.Context, batch models.UploadBatch) (int, error) {
	s, err := l.get()
	if err != nil {
		return 0, err
	}
	return s.InsertRows(ctx, batch)
}

func (l *Lazy) FetchRows(ctx context.Context, limit int) ([]models.StoredRow, error) {
	s, err := l.get()
	if err != nil {
		return nil, err
	}
	return s.FetchRows(ctx, limit)
}

func (l *Lazy) FetchColumns(ctx context.Context) ([]string, error) {
	s, err := l.get()
	if err != nil {
		return nil, err
	}
	return s.FetchColumns(ctx)
}

func (l *Lazy) DeleteAll(ctx context.Context) (int, error) {
	s, err := l.get()
	if err != nil {
		return 0, err
	}
	return s.DeleteAll(ctx)
}

func (l *Lazy) Ping(ctx context.Context) error {
	s, err := l.get()
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

func (l *Lazy) Close() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.inner != nil {
		l.inner.Close()
	}
}
