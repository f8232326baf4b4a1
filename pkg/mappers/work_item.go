package mappers

import (
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var workItemKeys = []string{"WorkItemKey", "AssignmentKey", "Id"}

// Tax-year derivation tiers, in precedence order. Best-effort: a work item
// titled "Payroll 2023 setup" yields 2023 even if the engagement is not a
// tax return at all.
var (
	workItemYearFields  = []string{"TaxYear", "Year"}
	workItemDateFields  = []string{"PeriodEndDate", "FiscalYearEndDate", "EndDate"}
	workItemTitleFields = []string{"Title", "Name"}
)

// MapWorkItem maps one raw work item record to its canonical form, or nil
// when no identity candidate resolves.
func MapWorkItem(raw mapping.Raw) *models.WorkItem {
	key := mapping.FirstString(raw, workItemKeys...)
	if key == "" {
		return nil
	}

	return &models.WorkItem{
		ExternalKey:    key,
		Title:          mapping.FirstString(raw, "Title", "Name", "Subject"),
		ClientGroupKey: mapping.FirstString(raw, "ClientGroupKey", "ClientKey"),
		AssigneeKey:    mapping.FirstString(raw, "AssigneeKey", "AssignedToKey"),
		StatusKey:      mapping.FirstString(raw, "WorkStatusKey", "StatusKey", "PrimaryStatus"),
		WorkType:       mapping.FirstString(raw, "WorkType", "Type"),
		StartDate:      mapping.FirstDate(raw, "StartDate", "CommencementDate"),
		DueDate:        mapping.FirstDate(raw, "DueDate", "DeadlineDate"),
		TaxYear:        mapping.TaxYear(raw, workItemYearFields, workItemDateFields, workItemTitleFields),
	}
}
