// Package mappers holds one pure mapper per entity type and the registry
// that declares each entity's endpoint, target table, identity candidates
// and dependency tier.
package mappers

import (
	"sort"

	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

// Entity describes one syncable entity type. Map returns nil when the raw
// record carries no usable identity; such records are filtered out before
// writing. The index is the record's position within its deduplicated batch
// and only participates in composite keys for entities the source never
// assigns a key to.
type Entity struct {
	Name            string
	Endpoint        string
	Table           string
	Columns         []string
	KeyCandidates   []string
	EmailCandidates []string
	// Tier is the dependency tier: an entity may reference external keys of
	// entities in strictly lower tiers only.
	Tier int
	Map  func(raw mapping.Raw, index int) models.Record
}

// Registry returns all entity types in dependency order (ascending tier,
// declaration order within a tier).
func Registry() []Entity {
	entities := []Entity{
		{
			Name:            "team_member",
			Endpoint:        "Users",
			Table:           "team_members",
			Columns:         models.TeamMemberColumns,
			KeyCandidates:   teamMemberKeys,
			EmailCandidates: teamMemberEmails,
			Tier:            0,
			Map: func(raw mapping.Raw, _ int) models.Record {
				if m := MapTeamMember(raw); m != nil {
					return m
				}
				return nil
			},
		},
		{
			Name:          "work_status",
			Endpoint:      "WorkItemStatuses",
			Table:         "work_statuses",
			Columns:       models.WorkStatusColumns,
			KeyCandidates: workStatusKeys,
			Tier:          0,
			Map: func(raw mapping.Raw, _ int) models.Record {
				if m := MapWorkStatus(raw); m != nil {
					return m
				}
				return nil
			},
		},
		{
			Name:            "contact",
			Endpoint:        "Contacts",
			Table:           "contacts",
			Columns:         models.ContactColumns,
			KeyCandidates:   contactKeys,
			EmailCandidates: contactEmails,
			Tier:            0,
			Map: func(raw mapping.Raw, _ int) models.Record {
				if m := MapContact(raw); m != nil {
					return m
				}
				return nil
			},
		},
		{
			Name:            "organization",
			Endpoint:        "Organizations",
			Table:           "organizations",
			Columns:         models.OrganizationColumns,
			KeyCandidates:   organizationKeys,
			EmailCandidates: organizationEmails,
			Tier:            0,
			Map: func(raw mapping.Raw, _ int) models.Record {
				if m := MapOrganization(raw); m != nil {
					return m
				}
				return nil
			},
		},
		{
			Name:          "client_group",
			Endpoint:      "ClientGroups",
			Table:         "client_groups",
			Columns:       models.ClientGroupColumns,
			KeyCandidates: clientGroupKeys,
			Tier:          1,
			Map: func(raw mapping.Raw, _ int) models.Record {
				if m := MapClientGroup(raw); m != nil {
					return m
				}
				return nil
			},
		},
		{
			Name:          "work_item",
			Endpoint:      "WorkItems",
			Table:         "work_items",
			Columns:       models.WorkItemColumns,
			KeyCandidates: workItemKeys,
			Tier:          2,
			Map: func(raw mapping.Raw, _ int) models.Record {
				if m := MapWorkItem(raw); m != nil {
					return m
				}
				return nil
			},
		},
		{
			Name:          "task",
			Endpoint:      "Tasks",
			Table:         "tasks",
			Columns:       models.TaskColumns,
			KeyCandidates: taskKeys,
			Tier:          3,
			Map: func(raw mapping.Raw, _ int) models.Record {
				if m := MapTask(raw); m != nil {
					return m
				}
				return nil
			},
		},
		{
			Name:          "timesheet_entry",
			Endpoint:      "TimeEntries",
			Table:         "timesheet_entries",
			Columns:       models.TimesheetEntryColumns,
			KeyCandidates: timesheetKeys,
			Tier:          3,
			Map: func(raw mapping.Raw, index int) models.Record {
				if m := MapTimesheetEntry(raw, index); m != nil {
					return m
				}
				return nil
			},
		},
		{
			Name:          "invoice",
			Endpoint:      "Invoices",
			Table:         "invoices",
			Columns:       models.InvoiceColumns,
			KeyCandidates: invoiceKeys,
			Tier:          3,
			Map: func(raw mapping.Raw, index int) models.Record {
				if m := MapInvoice(raw, index); m != nil {
					return m
				}
				return nil
			},
		},
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Tier < entities[j].Tier
	})
	return entities
}
