//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/firmdash/firmdash-sync/pkg/models"
	"github.com/firmdash/firmdash-sync/pkg/testhelpers"
)

func TestBatchWriter_UpsertIsIdempotent(t *testing.T) {
	db := testhelpers.GetSyncDB(t)
	writer := NewBatchWriter(db.DB, 100, zaptest.NewLogger(t))
	ctx := context.Background()

	now := time.Now().UTC()
	contact := &models.Contact{
		ExternalKey: "it-contact-1",
		FullName:    "Jane Doe",
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@firm.test",
	}

	synced, failed := writer.Upsert(ctx, "contacts", models.ContactColumns, "external_key",
		[][]any{contact.Values(now)})
	assert.Equal(t, 1, synced)
	assert.Zero(t, failed)

	// Same key again with changed fields updates in place.
	contact.Email = "jane.doe@firm.test"
	contact.Phone = "+1 555 0100"
	synced, failed = writer.Upsert(ctx, "contacts", models.ContactColumns, "external_key",
		[][]any{contact.Values(now.Add(time.Minute))})
	assert.Equal(t, 1, synced)
	assert.Zero(t, failed)

	var count int
	var email, phone string
	row := db.DB.QueryRow(ctx,
		`SELECT count(*) OVER (), email, phone FROM contacts WHERE external_key = $1`,
		contact.ExternalKey)
	require.NoError(t, row.Scan(&count, &email, &phone))
	assert.Equal(t, 1, count)
	assert.Equal(t, "jane.doe@firm.test", email)
	assert.Equal(t, "+1 555 0100", phone)
}

func TestBatchWriter_RowDegradeAgainstRealConstraint(t *testing.T) {
	db := testhelpers.GetSyncDB(t)
	writer := NewBatchWriter(db.DB, 10, zaptest.NewLogger(t))
	ctx := context.Background()

	now := time.Now().UTC()
	rows := make([][]any, 0, 3)
	for _, key := range []string{"it-ws-1", "it-ws-2", "it-ws-3"} {
		ws := &models.WorkStatus{ExternalKey: key, Name: "In Progress"}
		rows = append(rows, ws.Values(now))
	}
	// Poison one row with a nil primary key so the chunk insert fails and
	// the writer degrades to per-row retries.
	rows = append(rows, append([]any(nil), rows[0]...))
	rows[3][0] = nil

	synced, failed := writer.Upsert(ctx, "work_statuses", models.WorkStatusColumns, "external_key", rows)
	assert.Equal(t, 3, synced)
	assert.Equal(t, 1, failed)
}
