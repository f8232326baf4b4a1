package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/firmdash/firmdash-sync/pkg/logging"
	"github.com/firmdash/firmdash-sync/pkg/models"
	"github.com/firmdash/firmdash-sync/pkg/repositories"
)

// Reporter persists the audit trail of a sync run. The orchestrator only
// talks to this interface, so orchestration stays testable without a store.
type Reporter interface {
	// StartRun creates a run record in running state.
	StartRun(ctx context.Context) (*models.SyncRun, error)

	// ReportEntity persists one entity-type result.
	ReportEntity(ctx context.Context, result *models.EntityResult) error

	// FinishRun finalizes the run exactly once with its terminal status and
	// aggregate counts.
	FinishRun(ctx context.Context, run *models.SyncRun) error
}

type dbReporter struct {
	runs   repositories.SyncRunRepository
	logs   repositories.SyncLogRepository
	logger *zap.Logger
}

// NewReporter creates a Reporter backed by the sync_runs and sync_log tables.
func NewReporter(runs repositories.SyncRunRepository, logs repositories.SyncLogRepository, logger *zap.Logger) Reporter {
	return &dbReporter{
		runs:   runs,
		logs:   logs,
		logger: logger.Named("reporter"),
	}
}

var _ Reporter = (*dbReporter)(nil)

func (r *dbReporter) StartRun(ctx context.Context) (*models.SyncRun, error) {
	run, err := r.runs.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	r.logger.Info("Sync run started", zap.String("run_id", run.ID.String()))
	return run, nil
}

func (r *dbReporter) ReportEntity(ctx context.Context, result *models.EntityResult) error {
	result.ErrorMessage = logging.TruncateString(result.ErrorMessage, logging.MaxStoredErrorLength)

	if err := r.logs.Create(ctx, result); err != nil {
		return fmt.Errorf("report entity %s: %w", result.EntityType, err)
	}

	r.logger.Info("Entity synced",
		zap.String("entity_type", result.EntityType),
		zap.String("state", string(result.State)),
		zap.String("fetch_outcome", string(result.FetchOutcome)),
		zap.Int("fetched", result.Fetched),
		zap.Int("synced", result.Synced),
		zap.Int("errors", result.Errors),
		zap.Duration("duration", result.Duration()))
	return nil
}

func (r *dbReporter) FinishRun(ctx context.Context, run *models.SyncRun) error {
	if err := r.runs.Finalize(ctx, run); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	r.logger.Info("Sync run finished",
		zap.String("run_id", run.ID.String()),
		zap.String("status", string(run.Status)),
		zap.Int("total_fetched", run.TotalFetched),
		zap.Int("total_synced", run.TotalSynced),
		zap.Int("total_errors", run.TotalErrors))
	return nil
}
