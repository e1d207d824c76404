package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/apperrors"
	"github.com/aquasense/aquasense-engine/pkg/models"
	"github.com/aquasense/aquasense-engine/pkg/store"
)

// IngestService manages the dataset lifecycle: bulk ingest, bulk
// delete-all, and the column listing used for self-correction.
type IngestService interface {
	Ingest(ctx context.Context, filename string, columns []string, rows []models.Record) (*models.UploadBatch, error)
	DeleteAll(ctx context.Context) (int, error)
	Columns(ctx context.Context) ([]string, error)
}

type ingestService struct {
	tabular store.TabularStore
	cache   *store.DatasetCache
	logger  *zap.Logger
}

// NewIngestService wires the ingestion boundary. tabular may be nil; the
// cache then is the only storage.
func NewIngestService(tabular store.TabularStore, cache *store.DatasetCache, logger *zap.Logger) IngestService {
	return &ingestService{
		tabular: tabular,
		cache:   cache,
		logger:  logger.Named("ingest-service"),
	}
}

var _ IngestService = (*ingestService)(nil)

func (s *ingestService) Ingest(ctx context.Context, filename string, columns []string, rows []models.Record) (*models.UploadBatch, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyUpload
	}
	if len(columns) == 0 {
		columns = models.ColumnsOf(rows[0])
	}

	batch := models.UploadBatch{
		BatchID:    uuid.New(),
		Filename:   filename,
		Columns:    columns,
		Rows:       rows,
		UploadedAt: time.Now().UTC(),
	}

	if s.tabular != nil {
		inserted, err := s.tabular.InsertRows(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to persist upload batch: %w", err)
		}
		s.logger.Info("upload batch persisted",
			zap.String("batch_id", batch.BatchID.String()),
			zap.String("filename", filename),
			zap.Int("rows", inserted))
	}

	s.cache.Set(ctx, &models.Dataset{Columns: columns, Rows: rows})
	return &batch, nil
}

func (s *ingestService) DeleteAll(ctx context.Context) (int, error) {
	deleted := 0
	if s.tabular != nil {
		n, err := s.tabular.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to delete stored rows: %w", err)
		}
		deleted = n
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear dataset cache", zap.Error(err))
	}
	return deleted, nil
}

func (s *ingestService) Columns(ctx context.Context) ([]string, error) {
	if ds, ok := s.cache.Get(ctx); ok && len(ds.Columns) > 0 {
		return ds.Columns, nil
	}
	if s.tabular == nil {
		return nil, apperrors.ErrNoDataset
	}
	columns, err := s.tabular.FetchColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, apperrors.ErrNoDataset
	}
	return columns, nil
}
