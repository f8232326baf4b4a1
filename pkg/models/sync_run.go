package models

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the overall status of one sync run.
type RunStatus string

const (
	RunStatusRunning             RunStatus = "running"
	RunStatusCompleted           RunStatus = "completed"
	RunStatusCompletedWithErrors RunStatus = "completed_with_errors"
)

// EntityState tracks one entity type through its pipeline phases.
type EntityState string

const (
	EntityStatePending  EntityState = "pending"
	EntityStateFetching EntityState = "fetching"
	EntityStateMapping  EntityState = "mapping"
	EntityStateWriting  EntityState = "writing"
	EntityStateDone     EntityState = "done"
	EntityStateFailed   EntityState = "failed"
)

// entityTransitions holds the legal entity state machine edges.
// Failed is reachable from any active phase; Done only from Writing.
var entityTransitions = map[EntityState][]EntityState{
	EntityStatePending:  {EntityStateFetching, EntityStateFailed},
	EntityStateFetching: {EntityStateMapping, EntityStateFailed},
	EntityStateMapping:  {EntityStateWriting, EntityStateFailed},
	EntityStateWriting:  {EntityStateDone, EntityStateFailed},
}

// ValidTransition reports whether moving from one entity state to another is
// legal. Done and Failed are terminal.
func ValidTransition(from, to EntityState) bool {
	for _, next := range entityTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// FetchOutcome distinguishes how an entity's pagination ended.
type FetchOutcome string

const (
	FetchOutcomeComplete  FetchOutcome = "complete"
	FetchOutcomeTruncated FetchOutcome = "truncated"
	FetchOutcomeFailed    FetchOutcome = "failed"
)

// SyncRun is one execution of the orchestrator. It is created in running
// state and finalized exactly once.
type SyncRun struct {
	ID           uuid.UUID
	Status       RunStatus
	StartedAt    time.Time
	CompletedAt  *time.Time
	TotalFetched int
	TotalSynced  int
	TotalErrors  int
}

// EntityResult is the per-entity audit record for one run.
type EntityResult struct {
	RunID        uuid.UUID
	EntityType   string
	State        EntityState
	FetchOutcome FetchOutcome
	Fetched      int
	Synced       int
	Errors       int
	StartedAt    time.Time
	CompletedAt  time.Time
	ErrorMessage string
}

// Duration returns how long the entity's processing took.
func (r *EntityResult) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
