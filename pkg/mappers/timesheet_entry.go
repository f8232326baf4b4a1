package mappers

import (
	"fmt"

	"github.com/firmdash/firmdash-sync/pkg/jsonutil"
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var timesheetKeys = []string{"TimeEntryKey", "Id"}

// MapTimesheetEntry maps one raw time entry to its canonical form. The
// source rarely assigns time entries a key, so when no candidate resolves
// the external key is a deterministic composite of member key, entry date
// and the entry's index within its batch. An entry with neither a key nor a
// member+date pair has no usable identity and maps to nil.
func MapTimesheetEntry(raw mapping.Raw, index int) *models.TimesheetEntry {
	memberKey := mapping.FirstString(raw, "UserKey", "MemberKey", "AuthorKey")
	entryDate := mapping.FirstDate(raw, "EntryDate", "Date", "StartDate")

	key := mapping.FirstString(raw, timesheetKeys...)
	if key == "" {
		if memberKey == "" || entryDate == nil {
			return nil
		}
		key = fmt.Sprintf("%s:%s:%d", memberKey, entryDate.Format("2006-01-02"), index)
	}

	minutes := 0
	if n, ok := jsonutil.FlexibleFloat(mapping.First(raw, "Minutes")); ok {
		minutes = int(n)
	} else if h, ok := jsonutil.FlexibleFloat(mapping.First(raw, "Hours")); ok {
		minutes = int(h * 60)
	}

	return &models.TimesheetEntry{
		ExternalKey: key,
		MemberKey:   memberKey,
		WorkItemKey: mapping.FirstString(raw, "WorkItemKey"),
		EntryDate:   entryDate,
		Minutes:     minutes,
		Description: mapping.FirstString(raw, "Description", "Notes"),
		Billable:    jsonutil.FlexibleBool(mapping.First(raw, "Billable", "IsBillable")),
	}
}
