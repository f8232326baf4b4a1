package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/firmdash/firmdash-sync/pkg/models"
)

// SyncLogRepository provides data access for the sync_log audit table: one
// row per entity-type result per run. The operations dashboard reads this
// shape directly; it never touches pipeline internals.
type SyncLogRepository interface {
	// Create inserts one entity result row.
	Create(ctx context.Context, result *models.EntityResult) error

	// GetByRun returns all entity results for one run, in insertion order.
	GetByRun(ctx context.Context, runID uuid.UUID) ([]*models.EntityResult, error)
}

// RowQuerier extends Querier with multi-row queries.
type RowQuerier interface {
	Querier
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type syncLogRepository struct {
	db RowQuerier
}

// NewSyncLogRepository creates a new SyncLogRepository.
func NewSyncLogRepository(db RowQuerier) SyncLogRepository {
	return &syncLogRepository{db: db}
}

var _ SyncLogRepository = (*syncLogRepository)(nil)

func (r *syncLogRepository) Create(ctx context.Context, result *models.EntityResult) error {
	query := `
		INSERT INTO sync_log (
			run_id, entity_type, state, fetch_outcome,
			fetched, synced, errors, started_at, completed_at, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		result.RunID,
		result.EntityType,
		result.State,
		result.FetchOutcome,
		result.Fetched,
		result.Synced,
		result.Errors,
		result.StartedAt,
		result.CompletedAt,
		result.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to create sync log entry: %w", err)
	}

	return nil
}

func (r *syncLogRepository) GetByRun(ctx context.Context, runID uuid.UUID) ([]*models.EntityResult, error) {
	query := `
		SELECT run_id, entity_type, state, fetch_outcome,
		       fetched, synced, errors, started_at, completed_at, error_message
		FROM sync_log
		WHERE run_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync log: %w", err)
	}
	defer rows.Close()

	var results []*models.EntityResult
	for rows.Next() {
		result := &models.EntityResult{}
		err := rows.Scan(
			&result.RunID,
			&result.EntityType,
			&result.State,
			&result.FetchOutcome,
			&result.Fetched,
			&result.Synced,
			&result.Errors,
			&result.StartedAt,
			&result.CompletedAt,
			&result.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync log entry: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync log entries: %w", err)
	}

	return results, nil
}
