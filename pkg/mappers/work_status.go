package mappers

import (
	"github.com/firmdash/firmdash-sync/pkg/jsonutil"
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var workStatusKeys = []string{"WorkStatusKey", "StatusKey", "Id"}

// MapWorkStatus maps one raw workflow status record to its canonical form,
// or nil when no identity candidate resolves.
func MapWorkStatus(raw mapping.Raw) *models.WorkStatus {
	key := mapping.FirstString(raw, workStatusKeys...)
	if key == "" {
		return nil
	}

	sortOrder := 0
	if n, ok := jsonutil.FlexibleFloat(mapping.First(raw, "SortOrder", "Order")); ok {
		sortOrder = int(n)
	}

	return &models.WorkStatus{
		ExternalKey: key,
		Name:        mapping.FirstString(raw, "Name", "StatusName", "Title"),
		Category:    mapping.FirstString(raw, "Category", "PrimaryStatus"),
		SortOrder:   sortOrder,
	}
}
