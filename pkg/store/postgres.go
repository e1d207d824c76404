package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

// PostgresStore persists dataset rows as JSONB in a single table.
type PostgresStore struct {
	pool            *pgxpool.Pool
	insertBatchSize int
	deleteBatchSize int
	logger          *zap.Logger
}

var _ TabularStore = (*PostgresStore)(nil)

// Options bounds the store's round-trip sizes.
type Options struct {
	InsertBatchSize int
	DeleteBatchSize int
	MaxConnections  int32
}

// NewPostgresStore connects a pool and ensures the schema exists.
func NewPostgresStore(ctx context.Context, connString string, opts Options, logger *zap.Logger) (*PostgresStore, error) {
	if opts.InsertBatchSize <= 0 {
		opts.InsertBatchSize = 1000
	}
	if opts.DeleteBatchSize <= 0 {
		opts.DeleteBatchSize = 1000
	}

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}
	poolConfig.MaxConns = opts.MaxConnections
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = 25
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{
		pool:            pool,
		insertBatchSize: opts.InsertBatchSize,
		deleteBatchSize: opts.DeleteBatchSize,
		logger:          logger.Named("postgres-store"),
	}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS dataset_rows (
			id          BIGSERIAL PRIMARY KEY,
			row_data    JSONB NOT NULL,
			row_index   INTEGER NOT NULL,
			filename    TEXT NOT NULL DEFAULT '',
			batch_id    UUID NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_dataset_rows_batch_id ON dataset_rows (batch_id);
	`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// chunkBounds splits [0, total) into [start, end) ranges of at most size.
func chunkBounds(total, size int) [][2]int {
	var out [][2]int
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// InsertRows persists the batch in insert batches, preserving row order.
func (s *PostgresStore) InsertRows(ctx context.Context, batch models.UploadBatch) (int, error) {
	inserted := 0
	for _, bounds := range chunkBounds(len(batch.Rows), s.insertBatchSize) {
		start, end := bounds[0], bounds[1]

		pgBatch := &pgx.Batch{}
		for i := start; i < end; i++ {
			data, err := json.Marshal(batch.Rows[i])
			if err != nil {
				return inserted, fmt.Errorf("failed to encode row %d: %w", i, err)
			}
			pgBatch.Queue(
				`INSERT INTO dataset_rows (row_data, row_index, filename, batch_id, uploaded_at)
				 VALUES ($1, $2, $3, $4, $5)`,
				data, i, batch.Filename, batch.BatchID, batch.UploadedAt,
			)
		}

		results := s.pool.SendBatch(ctx, pgBatch)
		for i := start; i < end; i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return inserted, fmt.Errorf("failed to insert row %d: %w", i, err)
			}
			inserted++
		}
		if err := results.Close(); err != nil {
			return inserted, fmt.Errorf("failed to close insert batch: %w", err)
		}
	}

	s.logger.Info("rows inserted",
		zap.Int("count", inserted),
		zap.String("filename", batch.Filename),
		zap.String("batch_id", batch.BatchID.String()))
	return inserted, nil
}

// FetchRows returns rows in insertion order, bounded by limit.
func (s *PostgresStore) FetchRows(ctx context.Context, limit int) ([]models.StoredRow, error) {
	if limit <= 0 {
		limit = 10000
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, row_data, row_index, filename, batch_id, uploaded_at
		 FROM dataset_rows ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}
	defer rows.Close()

	var out []models.StoredRow
	for rows.Next() {
		var sr models.StoredRow
		var data []byte
		if err := rows.Scan(&sr.ID, &data, &sr.RowIndex, &sr.Filename, &sr.BatchID, &sr.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if err := json.Unmarshal(data, &sr.RowData); err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", sr.ID, err)
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// FetchColumns returns the key set of the most recent batch's first row.
func (s *PostgresStore) FetchColumns(ctx context.Context) ([]string, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT row_data FROM dataset_rows ORDER BY id DESC LIMIT 1`).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch columns: %w", err)
	}
	var row models.Record
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	return models.ColumnsOf(row), nil
}

// DeleteAll removes every row, deleting by id in bounded batches.
func (s *PostgresStore) DeleteAll(ctx context.Context) (int, error) {
	deleted := 0
	for {
		tag, err := s.pool.Exec(ctx,
			`DELETE FROM dataset_rows WHERE id IN (
				SELECT id FROM dataset_rows ORDER BY id LIMIT $1
			)`, s.deleteBatchSize)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete rows: %w", err)
		}
		n := int(tag.RowsAffected())
		deleted += n
		if n < s.deleteBatchSize {
			break
		}
	}
	s.logger.Info("all rows deleted", zap.Int("count", deleted))
	return deleted, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
