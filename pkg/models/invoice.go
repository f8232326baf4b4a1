package models

import "time"

// Invoice is one bill issued to a client group. When the source supplies no
// invoice key or number, ExternalKey is a deterministic composite of client
// key, invoice date and index.
type Invoice struct {
	ExternalKey    string
	InvoiceNumber  string
	ClientGroupKey string
	Status         string
	InvoiceDate    *time.Time // date-only
	DueDate        *time.Time // date-only
	Amount         float64
	Tax            float64
	Total          float64
}

// InvoiceColumns lists the invoices table columns in insert order.
var InvoiceColumns = []string{
	"external_key", "invoice_number", "client_group_key", "status",
	"invoice_date", "due_date", "amount", "tax", "total",
	"last_synced_at", "updated_at",
}

func (i *Invoice) Key() string { return i.ExternalKey }

func (i *Invoice) Values(now time.Time) []any {
	return []any{
		i.ExternalKey, i.InvoiceNumber, i.ClientGroupKey, i.Status,
		i.InvoiceDate, i.DueDate, i.Amount, i.Tax, i.Total,
		now, now,
	}
}
