package mappers

import (
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var clientGroupKeys = []string{"ClientGroupKey", "GroupKey", "Id"}

// MapClientGroup maps one raw client group record to its canonical form, or
// nil when no identity candidate resolves.
func MapClientGroup(raw mapping.Raw) *models.ClientGroup {
	key := mapping.FirstString(raw, clientGroupKeys...)
	if key == "" {
		return nil
	}

	return &models.ClientGroup{
		ExternalKey:     key,
		Name:            mapping.FirstString(raw, "FullName", "ClientGroupName", "Name"),
		ClientType:      mapping.FirstString(raw, "ClientType", "Type"),
		ContactKey:      mapping.FirstString(raw, "PrimaryContactKey", "ContactKey"),
		OrganizationKey: mapping.FirstString(raw, "OrganizationKey"),
		ManagerKey:      mapping.FirstString(raw, "ClientOwnerKey", "ManagerKey", "OwnerKey"),
	}
}
