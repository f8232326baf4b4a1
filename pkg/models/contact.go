package models

import "time"

// Contact is an individual person the firm works with.
type Contact struct {
	ExternalKey string
	FullName    string
	FirstName   string
	MiddleName  string
	LastName    string
	Email       string
	Phone       string // mobile preferred, label precedence in the mapper
	Address     string // physical preferred over mailing
}

// ContactColumns lists the contacts table columns in insert order.
var ContactColumns = []string{
	"external_key", "full_name", "first_name", "middle_name", "last_name",
	"email", "phone", "address",
	"last_synced_at", "updated_at",
}

func (c *Contact) Key() string { return c.ExternalKey }

func (c *Contact) Values(now time.Time) []any {
	return []any{
		c.ExternalKey, c.FullName, c.FirstName, c.MiddleName, c.LastName,
		c.Email, c.Phone, c.Address,
		now, now,
	}
}
