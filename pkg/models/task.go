package models

import "time"

// Task is one checklist step inside a work item.
type Task struct {
	ExternalKey string
	WorkItemKey string
	Title       string
	AssigneeKey string
	Status      string
	DueDate     *time.Time // date-only
}

// TaskColumns lists the tasks table columns in insert order.
var TaskColumns = []string{
	"external_key", "work_item_key", "title", "assignee_key", "status", "due_date",
	"last_synced_at", "updated_at",
}

func (t *Task) Key() string { return t.ExternalKey }

func (t *Task) Values(now time.Time) []any {
	return []any{
		t.ExternalKey, t.WorkItemKey, t.Title, t.AssigneeKey, t.Status, t.DueDate,
		now, now,
	}
}
