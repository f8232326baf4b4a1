package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/firmdash/firmdash-sync/pkg/dedupe"
	"github.com/firmdash/firmdash-sync/pkg/logging"
	"github.com/firmdash/firmdash-sync/pkg/mappers"
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
	"github.com/firmdash/firmdash-sync/pkg/source"
)

// Fetcher is the paginator surface the orchestrator depends on.
type Fetcher interface {
	FetchAll(ctx context.Context, endpoint string, params url.Values) ([]mapping.Raw, source.PageOutcome, error)
}

// Writer is the batch upsert surface the orchestrator depends on.
type Writer interface {
	Upsert(ctx context.Context, table string, columns []string, conflictKey string, rows [][]any) (int, int)
}

// conflictKey is the upsert conflict column for every entity table. Entities
// the source assigns no key get a deterministic composite external_key at
// map time, so the rule is uniform.
const conflictKey = "external_key"

// Orchestrator executes a full sync run: entity types in dependency order,
// each through fetch, dedupe, map and write, with failures isolated per
// entity type.
type Orchestrator struct {
	fetcher  Fetcher
	writer   Writer
	reporter Reporter
	entities []mappers.Entity
	logger   *zap.Logger
	now      func() time.Time
}

// NewOrchestrator creates an Orchestrator over the full entity registry.
func NewOrchestrator(fetcher Fetcher, writer Writer, reporter Reporter, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		writer:   writer,
		reporter: reporter,
		entities: mappers.Registry(),
		logger:   logger.Named("orchestrator"),
		now:      time.Now,
	}
}

// Run executes one sync run and returns the finalized run record. Only
// pre-entity failures (creating the run record) return an error; per-entity
// failures are contained, reported and reflected in the run status.
func (o *Orchestrator) Run(ctx context.Context) (*models.SyncRun, error) {
	run, err := o.reporter.StartRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	hadErrors := false
	for _, entity := range o.entities {
		// Cancellation between entity types: stop processing and finalize
		// the run rather than leaving it running forever.
		if ctx.Err() != nil {
			o.logger.Warn("Run cancelled, finalizing early", zap.String("next_entity", entity.Name))
			hadErrors = true
			break
		}

		result := o.processEntity(ctx, run, entity)

		run.TotalFetched += result.Fetched
		run.TotalSynced += result.Synced
		run.TotalErrors += result.Errors
		if result.State == models.EntityStateFailed || result.Errors > 0 {
			hadErrors = true
		}

		if err := o.reporter.ReportEntity(ctx, result); err != nil {
			// Reporting must not take down the pipeline.
			o.logger.Error("Failed to persist entity result",
				zap.String("entity_type", entity.Name),
				zap.Error(err))
		}
	}

	run.Status = models.RunStatusCompleted
	if hadErrors {
		run.Status = models.RunStatusCompletedWithErrors
	}

	if err := o.reporter.FinishRun(ctx, run); err != nil {
		o.logger.Error("Failed to finalize run", zap.Error(err))
	}

	return run, nil
}

// processEntity runs one entity type through the pipeline. It never returns
// an error: every failure is folded into the result so sibling entities keep
// going. A panic inside a mapper is contained the same way.
func (o *Orchestrator) processEntity(ctx context.Context, run *models.SyncRun, entity mappers.Entity) (result *models.EntityResult) {
	result = &models.EntityResult{
		RunID:        run.ID,
		EntityType:   entity.Name,
		State:        models.EntityStatePending,
		FetchOutcome: models.FetchOutcomeComplete,
		StartedAt:    o.now().UTC(),
	}
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Entity processing panicked",
				zap.String("entity_type", entity.Name),
				zap.Any("panic", r))
			result.State = models.EntityStateFailed
			result.ErrorMessage = fmt.Sprintf("panic: %v", r)
		}
		result.CompletedAt = o.now().UTC()
	}()

	o.advance(result, models.EntityStateFetching)
	raws, outcome, fetchErr := o.fetcher.FetchAll(ctx, entity.Endpoint, nil)
	result.Fetched = len(raws)
	switch outcome {
	case source.OutcomeTruncated:
		result.FetchOutcome = models.FetchOutcomeTruncated
	case source.OutcomeFailed:
		result.FetchOutcome = models.FetchOutcomeFailed
		result.ErrorMessage = logging.SanitizeError(fetchErr)
	}

	// Partial data from a failed fetch is still mapped and written; the
	// failure is reflected in the final state, not by discarding records.
	o.advance(result, models.EntityStateMapping)
	raws = dedupe.Records(raws, entity.KeyCandidates, entity.EmailCandidates)

	now := o.now().UTC()
	rows := make([][]any, 0, len(raws))
	for i, raw := range raws {
		rec := entity.Map(raw, i)
		if rec == nil {
			continue
		}
		rows = append(rows, rec.Values(now))
	}

	o.advance(result, models.EntityStateWriting)
	synced, failed := o.writer.Upsert(ctx, entity.Table, entity.Columns, conflictKey, rows)
	result.Synced = synced
	result.Errors = failed

	if fetchErr != nil {
		o.advance(result, models.EntityStateFailed)
	} else {
		o.advance(result, models.EntityStateDone)
	}
	return result
}

// advance moves an entity result through its state machine, guarding
// against illegal transitions.
func (o *Orchestrator) advance(result *models.EntityResult, to models.EntityState) {
	if !models.ValidTransition(result.State, to) {
		o.logger.Warn("Illegal entity state transition",
			zap.String("entity_type", result.EntityType),
			zap.String("from", string(result.State)),
			zap.String("to", string(to)))
		return
	}
	result.State = to
}
