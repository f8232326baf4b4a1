package models

import "time"

// Organization is a company or other non-person entity the firm works with.
type Organization struct {
	ExternalKey string
	FullName    string
	Email       string
	Phone       string
	Address     string
	Website     string
}

// OrganizationColumns lists the organizations table columns in insert order.
var OrganizationColumns = []string{
	"external_key", "full_name", "email", "phone", "address", "website",
	"last_synced_at", "updated_at",
}

func (o *Organization) Key() string { return o.ExternalKey }

func (o *Organization) Values(now time.Time) []any {
	return []any{
		o.ExternalKey, o.FullName, o.Email, o.Phone, o.Address, o.Website,
		now, now,
	}
}
