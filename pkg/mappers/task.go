package mappers

import (
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var taskKeys = []string{"TaskKey", "Id"}

// MapTask maps one raw task record to its canonical form, or nil when no
// identity candidate resolves.
func MapTask(raw mapping.Raw) *models.Task {
	key := mapping.FirstString(raw, taskKeys...)
	if key == "" {
		return nil
	}

	return &models.Task{
		ExternalKey: key,
		WorkItemKey: mapping.FirstString(raw, "WorkItemKey", "ParentKey"),
		Title:       mapping.FirstString(raw, "Title", "Name", "Description"),
		AssigneeKey: mapping.FirstString(raw, "AssigneeKey", "AssignedToKey"),
		Status:      mapping.FirstString(raw, "Status", "TaskStatus"),
		DueDate:     mapping.FirstDate(raw, "DueDate"),
	}
}
