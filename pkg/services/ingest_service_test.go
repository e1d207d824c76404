package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/apperrors"
	"github.com/aquasense/aquasense-engine/pkg/models"
	"github.com/aquasense/aquasense-engine/pkg/store"
)

type recordingTabularStore struct {
	stubTabularStore
	lastBatch   models.UploadBatch
	deleted     int
	columns     []string
	columnsErr  error
	insertCalls int
}

func (r *recordingTabularStore) InsertRows(ctx context.Context, batch models.UploadBatch) (int, error) {
	r.insertCalls++
	r.lastBatch = batch
	return len(batch.Rows), nil
}

func (r *recordingTabularStore) DeleteAll(ctx context.Context) (int, error) {
	return r.deleted, nil
}

func (r *recordingTabularStore) FetchColumns(ctx context.Context) ([]string, error) {
	return r.columns, r.columnsErr
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	tabular := &recordingTabularStore{}
	cache := store.NewDatasetCache(nil, zap.NewNop())
	svc := NewIngestService(tabular, cache, zap.NewNop())

	rows := []models.Record{
		{"분류코드": "2001G027", "FAI": 12.0},
		{"분류코드": "2001G028", "FAI": 35.0},
	}
	batch, err := svc.Ingest(ctx, "water.csv", []string{"분류코드", "FAI"}, rows)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, batch.BatchID)
	assert.Equal(t, "water.csv", batch.Filename)
	assert.Len(t, batch.Rows, 2)
	assert.False(t, batch.UploadedAt.IsZero())

	assert.Equal(t, 1, tabular.insertCalls)
	assert.Equal(t, batch.BatchID, tabular.lastBatch.BatchID)

	ds, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"분류코드", "FAI"}, ds.Columns)
	assert.Len(t, ds.Rows, 2)
}

func TestIngestDerivesColumns(t *testing.T) {
	ctx := context.Background()
	cache := store.NewDatasetCache(nil, zap.NewNop())
	svc := NewIngestService(nil, cache, zap.NewNop())

	batch, err := svc.Ingest(ctx, "water.csv", nil, []models.Record{{"분류코드": "2001G027", "FAI": 12.0}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"분류코드", "FAI"}, batch.Columns)
}

func TestIngestEmptyUpload(t *testing.T) {
	svc := NewIngestService(nil, store.NewDatasetCache(nil, zap.NewNop()), zap.NewNop())

	_, err := svc.Ingest(context.Background(), "empty.csv", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrEmptyUpload)
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()
	tabular := &recordingTabularStore{deleted: 42}
	cache := store.NewDatasetCache(nil, zap.NewNop())
	cache.Set(ctx, &models.Dataset{Rows: []models.Record{{"FAI": 1.0}}})
	svc := NewIngestService(tabular, cache, zap.NewNop())

	n, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestColumns(t *testing.T) {
	ctx := context.Background()

	t.Run("served from cache first", func(t *testing.T) {
		cache := store.NewDatasetCache(nil, zap.NewNop())
		cache.Set(ctx, &models.Dataset{Columns: []string{"분류코드", "FAI"}})
		svc := NewIngestService(&recordingTabularStore{columns: []string{"other"}}, cache, zap.NewNop())

		cols, err := svc.Columns(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"분류코드", "FAI"}, cols)
	})

	t.Run("falls through to store", func(t *testing.T) {
		cache := store.NewDatasetCache(nil, zap.NewNop())
		svc := NewIngestService(&recordingTabularStore{columns: []string{"분류코드"}}, cache, zap.NewNop())

		cols, err := svc.Columns(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"분류코드"}, cols)
	})

	t.Run("no dataset anywhere", func(t *testing.T) {
		cache := store.NewDatasetCache(nil, zap.NewNop())

		_, err := NewIngestService(nil, cache, zap.NewNop()).Columns(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNoDataset)

		_, err = NewIngestService(&recordingTabularStore{}, cache, zap.NewNop()).Columns(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNoDataset)
	})
}
