package mappers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmdash/firmdash-sync/pkg/mapping"
)

func TestMapTeamMember(t *testing.T) {
	t.Run("full name assembled from first and last", func(t *testing.T) {
		m := MapTeamMember(mapping.Raw{
			"UserKey":   "u1",
			"FirstName": "Jane",
			"LastName":  "Doe",
		})
		require.NotNil(t, m)
		assert.Equal(t, "Jane Doe", m.FullName)
	})

	t.Run("explicit full name wins", func(t *testing.T) {
		m := MapTeamMember(mapping.Raw{
			"UserKey":   "u1",
			"FullName":  "Dr. Jane Doe",
			"FirstName": "Jane",
			"LastName":  "Doe",
		})
		require.NotNil(t, m)
		assert.Equal(t, "Dr. Jane Doe", m.FullName)
	})

	t.Run("identity falls back to Id", func(t *testing.T) {
		m := MapTeamMember(mapping.Raw{"Id": "42", "Name": "Jane Doe"})
		require.NotNil(t, m)
		assert.Equal(t, "42", m.ExternalKey)
		assert.Equal(t, "Jane", m.FirstName)
		assert.Equal(t, "Doe", m.LastName)
	})

	t.Run("no identity maps to nil", func(t *testing.T) {
		assert.Nil(t, MapTeamMember(mapping.Raw{"FullName": "Ghost"}))
	})

	t.Run("mobile phone preferred", func(t *testing.T) {
		m := MapTeamMember(mapping.Raw{
			"UserKey": "u1",
			"PhoneNumbers": []any{
				map[string]any{"Label": "Work", "Number": "555-0200"},
				map[string]any{"Label": "Mobile", "Number": "555-0100"},
			},
		})
		require.NotNil(t, m)
		assert.Equal(t, "555-0100", m.Phone)
	})
}

func TestMapContact(t *testing.T) {
	t.Run("three-part name", func(t *testing.T) {
		c := MapContact(mapping.Raw{
			"ContactKey": "c1",
			"FirstName":  "Jane",
			"MiddleName": "Q",
			"LastName":   "Doe",
		})
		require.NotNil(t, c)
		assert.Equal(t, "Jane Q Doe", c.FullName)
	})

	t.Run("email normalized and nested card fallback", func(t *testing.T) {
		c := MapContact(mapping.Raw{
			"ContactKey":   "c1",
			"BusinessCard": map[string]any{"Email": "Jane@Firm.Test"},
		})
		require.NotNil(t, c)
		assert.Equal(t, "jane@firm.test", c.Email)
	})

	t.Run("physical address preferred over mailing", func(t *testing.T) {
		c := MapContact(mapping.Raw{
			"ContactKey": "c1",
			"Addresses": []any{
				map[string]any{"Label": "Mailing", "Address": "PO Box 7"},
				map[string]any{"Label": "Physical", "Address": "1 Main St"},
			},
		})
		require.NotNil(t, c)
		assert.Equal(t, "1 Main St", c.Address)
	})

	t.Run("single address object coerced to array", func(t *testing.T) {
		c := MapContact(mapping.Raw{
			"ContactKey": "c1",
			"Addresses":  map[string]any{"Label": "Physical", "Address": "1 Main St"},
		})
		require.NotNil(t, c)
		assert.Equal(t, "1 Main St", c.Address)
	})
}

func TestMapOrganization(t *testing.T) {
	t.Run("name candidate order", func(t *testing.T) {
		o := MapOrganization(mapping.Raw{
			"OrganizationKey":  "o1",
			"OrganizationName": "Acme LLC",
			"Name":             "Acme",
		})
		require.NotNil(t, o)
		assert.Equal(t, "Acme LLC", o.FullName)
	})

	t.Run("key alias is strict", func(t *testing.T) {
		assert.Nil(t, MapOrganization(mapping.Raw{"Id": "o1", "Name": "Acme"}))
	})
}

func TestMapWorkItem(t *testing.T) {
	t.Run("tax year from title when no explicit field", func(t *testing.T) {
		w := MapWorkItem(mapping.Raw{
			"WorkItemKey": "w1",
			"Title":       "2024 Tax Return",
		})
		require.NotNil(t, w)
		require.NotNil(t, w.TaxYear)
		assert.Equal(t, 2024, *w.TaxYear)
	})

	t.Run("no tax year signal yields nil", func(t *testing.T) {
		w := MapWorkItem(mapping.Raw{
			"WorkItemKey": "w1",
			"Title":       "Monthly Bookkeeping",
		})
		require.NotNil(t, w)
		assert.Nil(t, w.TaxYear)
	})

	t.Run("dates truncated", func(t *testing.T) {
		w := MapWorkItem(mapping.Raw{
			"WorkItemKey": "w1",
			"DueDate":     "2024-04-15T17:00:00Z",
		})
		require.NotNil(t, w)
		require.NotNil(t, w.DueDate)
		assert.Equal(t, "2024-04-15", w.DueDate.Format("2006-01-02"))
		assert.Zero(t, w.DueDate.Hour())
	})
}

func TestMapTimesheetEntry(t *testing.T) {
	t.Run("composite key when source has none", func(t *testing.T) {
		e := MapTimesheetEntry(mapping.Raw{
			"UserKey":   "u1",
			"EntryDate": "2024-03-05",
			"Hours":     1.5,
		}, 3)
		require.NotNil(t, e)
		assert.Equal(t, "u1:2024-03-05:3", e.ExternalKey)
		assert.Equal(t, 90, e.Minutes)
	})

	t.Run("explicit key wins over composite", func(t *testing.T) {
		e := MapTimesheetEntry(mapping.Raw{
			"TimeEntryKey": "t9",
			"UserKey":      "u1",
			"EntryDate":    "2024-03-05",
			"Minutes":      float64(30),
		}, 0)
		require.NotNil(t, e)
		assert.Equal(t, "t9", e.ExternalKey)
		assert.Equal(t, 30, e.Minutes)
	})

	t.Run("no identity at all", func(t *testing.T) {
		assert.Nil(t, MapTimesheetEntry(mapping.Raw{"Hours": 2.0}, 0))
	})
}

func TestMapInvoice(t *testing.T) {
	t.Run("total derived from amount and tax", func(t *testing.T) {
		i := MapInvoice(mapping.Raw{
			"InvoiceKey": "i1",
			"Amount":     100.0,
			"Tax":        15.0,
		}, 0)
		require.NotNil(t, i)
		assert.Equal(t, 115.0, i.Total)
	})

	t.Run("invoice number as identity fallback", func(t *testing.T) {
		i := MapInvoice(mapping.Raw{"InvoiceNumber": float64(1042)}, 0)
		require.NotNil(t, i)
		assert.Equal(t, "1042", i.ExternalKey)
		assert.Equal(t, "1042", i.InvoiceNumber)
	})

	t.Run("composite key from client and date", func(t *testing.T) {
		i := MapInvoice(mapping.Raw{
			"ClientGroupKey": "g1",
			"InvoiceDate":    "2024-02-01",
		}, 7)
		require.NotNil(t, i)
		assert.Equal(t, "g1:2024-02-01:7", i.ExternalKey)
	})
}

func TestRegistry_DependencyOrder(t *testing.T) {
	entities := Registry()
	require.Len(t, entities, 9)

	tierOf := make(map[string]int, len(entities))
	position := make(map[string]int, len(entities))
	for i, e := range entities {
		tierOf[e.Name] = e.Tier
		position[e.Name] = i
	}

	// Tiers are non-decreasing along the slice.
	for i := 1; i < len(entities); i++ {
		assert.GreaterOrEqual(t, entities[i].Tier, entities[i-1].Tier)
	}

	// Referenced entities always sit in strictly lower tiers.
	assert.Less(t, tierOf["team_member"], tierOf["client_group"])
	assert.Less(t, tierOf["contact"], tierOf["client_group"])
	assert.Less(t, tierOf["organization"], tierOf["client_group"])
	assert.Less(t, tierOf["client_group"], tierOf["work_item"])
	assert.Less(t, tierOf["work_status"], tierOf["work_item"])
	assert.Less(t, tierOf["work_item"], tierOf["task"])
	assert.Less(t, tierOf["work_item"], tierOf["timesheet_entry"])
	assert.Less(t, tierOf["work_item"], tierOf["invoice"])

	// Every entity declares the essentials.
	for _, e := range entities {
		assert.NotEmpty(t, e.Endpoint, e.Name)
		assert.NotEmpty(t, e.Table, e.Name)
		assert.NotEmpty(t, e.Columns, e.Name)
		assert.NotEmpty(t, e.KeyCandidates, e.Name)
		assert.NotNil(t, e.Map, e.Name)
	}
}

func TestRegistry_MapFiltersUnidentifiable(t *testing.T) {
	for _, e := range Registry() {
		rec := e.Map(mapping.Raw{"Unrelated": "noise"}, 0)
		assert.Nil(t, rec, "entity %s should filter records with no identity", e.Name)
	}
}
