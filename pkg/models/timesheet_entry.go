package models

import "time"

// TimesheetEntry is one block of recorded time. The source never assigns
// these a key, so ExternalKey is a deterministic composite of member key,
// entry date and the entry's index within that record.
type TimesheetEntry struct {
	ExternalKey string
	MemberKey   string
	WorkItemKey string
	EntryDate   *time.Time // date-only
	Minutes     int
	Description string
	Billable    bool
}

// TimesheetEntryColumns lists the timesheet_entries table columns in insert order.
var TimesheetEntryColumns = []string{
	"external_key", "member_key", "work_item_key", "entry_date", "minutes",
	"description", "billable",
	"last_synced_at", "updated_at",
}

func (e *TimesheetEntry) Key() string { return e.ExternalKey }

func (e *TimesheetEntry) Values(now time.Time) []any {
	return []any{
		e.ExternalKey, e.MemberKey, e.WorkItemKey, e.EntryDate, e.Minutes,
		e.Description, e.Billable,
		now, now,
	}
}
