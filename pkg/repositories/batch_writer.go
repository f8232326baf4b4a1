package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/firmdash/firmdash-sync/pkg/logging"
)

// Execer is the slice of pgxpool.Pool the batch writer needs. Narrowing it
// to one method keeps the chunk-degrade behavior testable without a store.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// BatchWriter upserts canonical records in fixed-size chunks. A failed chunk
// degrades to row-by-row upserts so one malformed record does not sacrifice
// its chunk. Row-level failures are counted, never returned as errors.
type BatchWriter struct {
	db        Execer
	chunkSize int
	logger    *zap.Logger
}

// NewBatchWriter creates a BatchWriter. chunkSize defaults to 100 when
// non-positive.
func NewBatchWriter(db Execer, chunkSize int, logger *zap.Logger) *BatchWriter {
	if chunkSize <= 0 {
		chunkSize = 100
	}
	return &BatchWriter{
		db:        db,
		chunkSize: chunkSize,
		logger:    logger.Named("batch-writer"),
	}
}

// Upsert writes rows into table with merge semantics on conflictKey:
// conflicts update every non-conflict column, so re-running with the same
// rows is idempotent. Returns how many rows synced and how many failed.
func (w *BatchWriter) Upsert(ctx context.Context, table string, columns []string, conflictKey string, rows [][]any) (int, int) {
	var synced, failed int

	for start := 0; start < len(rows); start += w.chunkSize {
		end := start + w.chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		query, args := buildUpsert(table, columns, conflictKey, chunk)
		if _, err := w.db.Exec(ctx, query, args...); err == nil {
			synced += len(chunk)
			continue
		} else {
			w.logger.Warn("Chunk upsert failed, degrading to per-row writes",
				zap.String("table", table),
				zap.Int("chunk_size", len(chunk)),
				zap.String("error", logging.SanitizeError(err)))
		}

		for _, row := range chunk {
			query, args := buildUpsert(table, columns, conflictKey, [][]any{row})
			if _, err := w.db.Exec(ctx, query, args...); err != nil {
				failed++
				w.logger.Error("Row upsert failed",
					zap.String("table", table),
					zap.String("error", logging.SanitizeError(err)))
				continue
			}
			synced++
		}
	}

	return synced, failed
}

// buildUpsert assembles a multi-row INSERT ... ON CONFLICT DO UPDATE. Table
// and column names come from the entity registry, never from source data.
func buildUpsert(table string, columns []string, conflictKey string, rows [][]any) (string, []any) {
	placeholders := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*len(columns))

	n := 1
	for _, row := range rows {
		ps := make([]string, len(columns))
		for i := range columns {
			ps[i] = fmt.Sprintf("$%d", n)
			n++
		}
		placeholders = append(placeholders, "("+strings.Join(ps, ", ")+")")
		args = append(args, row...)
	}

	updates := make([]string, 0, len(columns)-1)
	for _, col := range columns {
		if col == conflictKey {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s ON CONFLICT (%s) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		conflictKey,
		strings.Join(updates, ", "),
	)
	return query, args
}
