package models

import "time"

// TeamMember is a staff member of the firm.
type TeamMember struct {
	ExternalKey string
	FullName    string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Role        string
}

// TeamMemberColumns lists the team_members table columns in insert order.
var TeamMemberColumns = []string{
	"external_key", "full_name", "first_name", "last_name", "email", "phone", "role",
	"last_synced_at", "updated_at",
}

func (m *TeamMember) Key() string { return m.ExternalKey }

func (m *TeamMember) Values(now time.Time) []any {
	return []any{
		m.ExternalKey, m.FullName, m.FirstName, m.LastName, m.Email, m.Phone, m.Role,
		now, now,
	}
}
