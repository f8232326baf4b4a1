package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/firmdash/firmdash-sync/pkg/apperrors"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

// Querier is the slice of pgxpool.Pool the audit repositories need.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SyncRunRepository provides data access for the sync_runs audit table.
type SyncRunRepository interface {
	// Create inserts a new run in running state.
	Create(ctx context.Context) (*models.SyncRun, error)

	// Finalize marks a run terminal exactly once. A second call returns
	// apperrors.ErrRunFinalized.
	Finalize(ctx context.Context, run *models.SyncRun) error

	// GetByID returns one run.
	GetByID(ctx context.Context, id uuid.UUID) (*models.SyncRun, error)
}

type syncRunRepository struct {
	db Querier
}

// NewSyncRunRepository creates a new SyncRunRepository.
func NewSyncRunRepository(db Querier) SyncRunRepository {
	return &syncRunRepository{db: db}
}

var _ SyncRunRepository = (*syncRunRepository)(nil)

func (r *syncRunRepository) Create(ctx context.Context) (*models.SyncRun, error) {
	run := &models.SyncRun{
		ID:        uuid.New(),
		Status:    models.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO sync_runs (id, status, started_at)
		VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, run.ID, run.Status, run.StartedAt); err != nil {
		return nil, fmt.Errorf("failed to create sync run: %w", err)
	}

	return run, nil
}

func (r *syncRunRepository) Finalize(ctx context.Context, run *models.SyncRun) error {
	completed := time.Now().UTC()

	query := `
		UPDATE sync_runs
		SET status = $2, completed_at = $3,
		    total_fetched = $4, total_synced = $5, total_errors = $6
		WHERE id = $1 AND status = $7`

	tag, err := r.db.Exec(ctx, query,
		run.ID,
		run.Status,
		completed,
		run.TotalFetched,
		run.TotalSynced,
		run.TotalErrors,
		models.RunStatusRunning,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize sync run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRunFinalized
	}

	run.CompletedAt = &completed
	return nil
}

func (r *syncRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SyncRun, error) {
	query := `
		SELECT id, status, started_at, completed_at, total_fetched, total_synced, total_errors
		FROM sync_runs
		WHERE id = $1`

	run := &models.SyncRun{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.Status,
		&run.StartedAt,
		&run.CompletedAt,
		&run.TotalFetched,
		&run.TotalSynced,
		&run.TotalErrors,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync run: %w", err)
	}

	return run, nil
}
