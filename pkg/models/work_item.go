package models

import "time"

// WorkItem is one piece of client work (a tax return, an audit, a monthly
// bookkeeping engagement). TaxYear is a best-effort derivation and may be
// nil even when the source record implied one.
type WorkItem struct {
	ExternalKey    string
	Title          string
	ClientGroupKey string
	AssigneeKey    string
	StatusKey      string
	WorkType       string
	StartDate      *time.Time // date-only
	DueDate        *time.Time // date-only
	TaxYear        *int
}

// WorkItemColumns lists the work_items table columns in insert order.
var WorkItemColumns = []string{
	"external_key", "title", "client_group_key", "assignee_key", "status_key",
	"work_type", "start_date", "due_date", "tax_year",
	"last_synced_at", "updated_at",
}

func (w *WorkItem) Key() string { return w.ExternalKey }

func (w *WorkItem) Values(now time.Time) []any {
	return []any{
		w.ExternalKey, w.Title, w.ClientGroupKey, w.AssigneeKey, w.StatusKey,
		w.WorkType, w.StartDate, w.DueDate, w.TaxYear,
		now, now,
	}
}
