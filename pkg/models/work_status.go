package models

import "time"

// WorkStatus is one state in the firm's configurable work item workflow.
type WorkStatus struct {
	ExternalKey string
	Name        string
	Category    string // e.g. "In Progress", "Completed"
	SortOrder   int
}

// WorkStatusColumns lists the work_statuses table columns in insert order.
var WorkStatusColumns = []string{
	"external_key", "name", "category", "sort_order",
	"last_synced_at", "updated_at",
}

func (s *WorkStatus) Key() string { return s.ExternalKey }

func (s *WorkStatus) Values(now time.Time) []any {
	return []any{
		s.ExternalKey, s.Name, s.Category, s.SortOrder,
		now, now,
	}
}
