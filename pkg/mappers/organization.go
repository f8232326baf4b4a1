package mappers

import (
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var (
	organizationKeys   = []string{"OrganizationKey"}
	organizationEmails = []string{"EmailAddress", "Email", "BusinessCard.Email"}
)

// MapOrganization maps one raw organization record to its canonical form, or
// nil when no identity candidate resolves.
func MapOrganization(raw mapping.Raw) *models.Organization {
	key := mapping.FirstString(raw, organizationKeys...)
	if key == "" {
		return nil
	}

	phone := mapping.PickByLabel(
		mapping.FirstSlice(raw, "PhoneNumbers", "BusinessCard.PhoneNumbers", "Phone"),
		"Label", "Number", "Work", "Main")

	address := mapping.PickByLabel(
		mapping.FirstSlice(raw, "Addresses", "BusinessCard.Addresses", "Address"),
		"Label", "Address", "Physical", "Mailing")

	return &models.Organization{
		ExternalKey: key,
		FullName:    mapping.FirstString(raw, "FullName", "OrganizationName", "Name"),
		Email:       mapping.NormalizeEmail(mapping.FirstString(raw, organizationEmails...)),
		Phone:       phone,
		Address:     address,
		Website:     mapping.FirstString(raw, "Website", "WebSite", "Url"),
	}
}
