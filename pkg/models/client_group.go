package models

import "time"

// ClientGroup groups the contacts and organizations that together form one
// client engagement. References resolve against the contact, organization
// and team member tables by external key.
type ClientGroup struct {
	ExternalKey     string
	Name            string
	ClientType      string
	ContactKey      string // primary contact
	OrganizationKey string
	ManagerKey      string // owning team member
}

// ClientGroupColumns lists the client_groups table columns in insert order.
var ClientGroupColumns = []string{
	"external_key", "name", "client_type", "contact_key", "organization_key", "manager_key",
	"last_synced_at", "updated_at",
}

func (g *ClientGroup) Key() string { return g.ExternalKey }

func (g *ClientGroup) Values(now time.Time) []any {
	return []any{
		g.ExternalKey, g.Name, g.ClientType, g.ContactKey, g.OrganizationKey, g.ManagerKey,
		now, now,
	}
}
