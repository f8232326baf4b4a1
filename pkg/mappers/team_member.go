package mappers

import (
	"strings"

	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var (
	teamMemberKeys   = []string{"UserKey", "MemberKey", "Id"}
	teamMemberEmails = []string{"EmailAddress", "Email"}
)

// MapTeamMember maps one raw user record to a canonical team member, or nil
// when no identity candidate resolves.
func MapTeamMember(raw mapping.Raw) *models.TeamMember {
	key := mapping.FirstString(raw, teamMemberKeys...)
	if key == "" {
		return nil
	}

	first := mapping.FirstString(raw, "FirstName", "GivenName")
	last := mapping.FirstString(raw, "LastName", "Surname")

	full := mapping.FirstString(raw, "FullName")
	if full == "" {
		full = mapping.JoinNonEmpty(first, last)
	}
	if full == "" {
		full = mapping.FirstString(raw, "Name")
	}

	// Some tenants only carry a combined Name; split it so first/last stay
	// populated for the dashboard's sort columns.
	if first == "" && last == "" && full != "" {
		parts := strings.SplitN(full, " ", 2)
		first = parts[0]
		if len(parts) == 2 {
			last = parts[1]
		}
	}

	phone := mapping.PickByLabel(
		mapping.FirstSlice(raw, "PhoneNumbers", "Phones", "Phone"),
		"Label", "Number", "Mobile", "Work")

	return &models.TeamMember{
		ExternalKey: key,
		FullName:    full,
		FirstName:   first,
		LastName:    last,
		Email:       mapping.NormalizeEmail(mapping.FirstString(raw, teamMemberEmails...)),
		Phone:       phone,
		Role:        mapping.FirstString(raw, "RoleName", "Role", "JobTitle"),
	}
}
