package mappers

import (
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var (
	contactKeys   = []string{"ContactKey", "Id"}
	contactEmails = []string{"EmailAddress", "Email", "BusinessCard.Email", "BusinessCards.EmailAddresses"}
)

// MapContact maps one raw contact record to a canonical contact, or nil when
// no identity candidate resolves.
func MapContact(raw mapping.Raw) *models.Contact {
	key := mapping.FirstString(raw, contactKeys...)
	if key == "" {
		return nil
	}

	first := mapping.FirstString(raw, "FirstName", "GivenName")
	middle := mapping.FirstString(raw, "MiddleName")
	last := mapping.FirstString(raw, "LastName", "Surname")

	full := mapping.FirstString(raw, "FullName")
	if full == "" {
		full = mapping.JoinNonEmpty(first, middle, last)
	}

	phone := mapping.PickByLabel(
		mapping.FirstSlice(raw, "PhoneNumbers", "BusinessCard.PhoneNumbers", "Phone"),
		"Label", "Number", "Mobile", "Work")

	address := mapping.PickByLabel(
		mapping.FirstSlice(raw, "Addresses", "BusinessCard.Addresses", "Address"),
		"Label", "Address", "Physical", "Mailing")

	return &models.Contact{
		ExternalKey: key,
		FullName:    full,
		FirstName:   first,
		MiddleName:  middle,
		LastName:    last,
		Email:       mapping.NormalizeEmail(mapping.FirstString(raw, contactEmails...)),
		Phone:       phone,
		Address:     address,
	}
}
