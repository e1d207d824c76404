package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

const snapshotKey = "aquasense:dataset:snapshot"

// DatasetCache holds the last successfully fetched dataset so questions
// can still be answered while the remote store is unreachable. An optional
// redis client persists the snapshot across restarts.
type DatasetCache struct {
	mu      sync.RWMutex
	dataset *models.Dataset

	rdb    *redis.Client
	logger *zap.Logger
}

// NewDatasetCache creates a cache. rdb may be nil.
func NewDatasetCache(rdb *redis.Client, logger *zap.Logger) *DatasetCache {
	return &DatasetCache{
		rdb:    rdb,
		logger: logger.Named("dataset-cache"),
	}
}

// Set replaces the cached dataset and best-effort writes the redis
// snapshot.
func (c *DatasetCache) Set(ctx context.Context, ds *models.Dataset) {
	c.mu.Lock()
	c.dataset = ds
	c.mu.Unlock()

	if c.rdb == nil || ds == nil {
		return
	}
	data, err := json.Marshal(ds)
	if err != nil {
		c.logger.Warn("failed to encode dataset snapshot", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		c.logger.Warn("failed to write dataset snapshot", zap.Error(err))
	}
}

// Get returns the cached dataset, falling back to the redis snapshot if
// memory is empty. ok is false when nothing is cached anywhere.
func (c *DatasetCache) Get(ctx context.Context) (*models.Dataset, bool) {
	c.mu.RLock()
	ds := c.dataset
	c.mu.RUnlock()
	if ds != nil {
		return ds, true
	}

	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("failed to read dataset snapshot", zap.Error(err))
		}
		return nil, false
	}
	var snapshot models.Dataset
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.logger.Warn("failed to decode dataset snapshot", zap.Error(err))
		return nil, false
	}

	c.mu.Lock()
	c.dataset = &snapshot
	c.mu.Unlock()
	return &snapshot, true
}

// Clear drops the cached dataset and the redis snapshot.
func (c *DatasetCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.dataset = nil
	c.mu.Unlock()

	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to clear dataset snapshot: %w", err)
	}
	return nil
}
