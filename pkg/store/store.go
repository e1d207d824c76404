// Package store persists uploaded dataset rows and serves bounded reads,
// with an in-memory fallback for when the remote store is unreachable.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

// TabularStore is the remote row store.
type TabularStore interface {
	// InsertRows persists an upload batch in bounded insert batches.
	InsertRows(ctx context.Context, batch models.UploadBatch) (int, error)
	// FetchRows returns stored rows in insertion order, up to limit.
	FetchRows(ctx context.Context, limit int) ([]models.StoredRow, error)
	// FetchColumns returns the column set of the most recent upload batch.
	FetchColumns(ctx context.Context) ([]string, error)
	// DeleteAll removes every stored row in bounded delete batches and
	// returns the number deleted.
	DeleteAll(ctx context.Context) (int, error)
	// Ping verifies connectivity.
	Ping(ctx context.Context) error
	Close()
}

// LatestBatchID is a convenience for callers that tag fetches.
func LatestBatchID(rows []models.StoredRow) uuid.UUID {
	if len(rows) == 0 {
		return uuid.Nil
	}
	return rows[len(rows)-1].BatchID
}
