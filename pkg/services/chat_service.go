// Package services orchestrates questions and dataset ingestion across
// the store, query engine, and composer.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/alerts"
	"github.com/aquasense/aquasense-engine/pkg/apperrors"
	"github.com/aquasense/aquasense-engine/pkg/compose"
	"github.com/aquasense/aquasense-engine/pkg/models"
	"github.com/aquasense/aquasense-engine/pkg/query"
	"github.com/aquasense/aquasense-engine/pkg/store"
)

// ChatService answers one natural-language question start to finish.
type ChatService interface {
	Ask(ctx context.Context, question string) (*models.Answer, error)
}

type chatService struct {
	parser       *query.Parser
	engine       *query.Engine
	checker      *alerts.Checker
	composer     *compose.Composer
	tabular      store.TabularStore
	cache        *store.DatasetCache
	readiness    *store.Readiness
	fetchLimit   int
	storeTimeout time.Duration
	logger       *zap.Logger
}

// NewChatService wires the question pipeline. tabular may be nil when no
// remote store is configured; the cache then serves all reads.
func NewChatService(
	parser *query.Parser,
	engine *query.Engine,
	checker *alerts.Checker,
	composer *compose.Composer,
	tabular store.TabularStore,
	cache *store.DatasetCache,
	readiness *store.Readiness,
	fetchLimit int,
	storeTimeout time.Duration,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		parser:       parser,
		engine:       engine,
		checker:      checker,
		composer:     composer,
		tabular:      tabular,
		cache:        cache,
		readiness:    readiness,
		fetchLimit:   fetchLimit,
		storeTimeout: storeTimeout,
		logger:       logger.Named("chat-service"),
	}
}

var _ ChatService = (*chatService)(nil)

func (s *chatService) Ask(ctx context.Context, question string) (*models.Answer, error) {
	conditions := s.parser.Parse(question)

	dataset, err := s.loadDataset(ctx)
	if err != nil {
		return nil, err
	}

	result := s.engine.Execute(dataset.Rows, conditions, dataset.Columns)

	var rowAlerts []models.Alert
	if len(result.Rows) > 0 {
		rowAlerts = s.checker.Check(result.Rows[0])
	}

	answer := s.composer.Compose(ctx, compose.Input{
		Question:       question,
		Rows:           result.Rows,
		TargetColumns:  result.TargetColumns,
		Conditions:     conditions,
		DatasetColumns: dataset.Columns,
		Alerts:         rowAlerts,
	})
	return answer, nil
}

// loadDataset fetches from the remote store within the timeout budget,
// refreshing the cache on success and falling back to it on failure.
func (s *chatService) loadDataset(ctx context.Context) (*models.Dataset, error) {
	if s.tabular == nil {
		if ds, ok := s.cache.Get(ctx); ok {
			return ds, nil
		}
		return nil, apperrors.ErrNoDataset
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.readiness.Wait(fetchCtx); err != nil {
		return s.fallback(ctx, err)
	}

	stored, err := s.tabular.FetchRows(fetchCtx, s.fetchLimit)
	if err != nil {
		return s.fallback(ctx, err)
	}

	dataset := datasetFromStored(stored)
	s.cache.Set(ctx, dataset)
	return dataset, nil
}

func (s *chatService) fallback(ctx context.Context, cause error) (*models.Dataset, error) {
	s.logger.Warn("remote store unavailable, using cached dataset", zap.Error(cause))
	if ds, ok := s.cache.Get(ctx); ok {
		return ds, nil
	}
	return nil, apperrors.ErrStoreUnavailable
}

// datasetFromStored rebuilds the in-memory dataset, taking the column
// order from the first row's key set.
func datasetFromStored(stored []models.StoredRow) *models.Dataset {
	ds := &models.Dataset{}
	for _, sr := range stored {
		ds.Rows = append(ds.Rows, sr.RowData)
	}
	if len(ds.Rows) > 0 {
		ds.Columns = models.ColumnsOf(ds.Rows[0])
	}
	return ds
}
