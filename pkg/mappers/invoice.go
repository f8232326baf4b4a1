package mappers

import (
	"fmt"

	"github.com/firmdash/firmdash-sync/pkg/jsonutil"
	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
)

var invoiceKeys = []string{"InvoiceKey", "InvoiceNumber", "Id"}

// MapInvoice maps one raw invoice to its canonical form. Invoices usually
// carry a key or at least a number; the few that carry neither get a
// deterministic composite of client key, invoice date and batch index. An
// invoice with no key, no number and no client+date pair maps to nil.
func MapInvoice(raw mapping.Raw, index int) *models.Invoice {
	clientKey := mapping.FirstString(raw, "ClientGroupKey", "ClientKey")
	invoiceDate := mapping.FirstDate(raw, "InvoiceDate", "Date", "IssuedDate")

	key := mapping.FirstString(raw, invoiceKeys...)
	if key == "" {
		if clientKey == "" || invoiceDate == nil {
			return nil
		}
		key = fmt.Sprintf("%s:%s:%d", clientKey, invoiceDate.Format("2006-01-02"), index)
	}

	amount, _ := jsonutil.FlexibleFloat(mapping.First(raw, "Amount", "SubTotal"))
	tax, _ := jsonutil.FlexibleFloat(mapping.First(raw, "Tax", "TaxAmount"))
	total, ok := jsonutil.FlexibleFloat(mapping.First(raw, "Total", "TotalAmount"))
	if !ok {
		total = amount + tax
	}

	return &models.Invoice{
		ExternalKey:    key,
		InvoiceNumber:  mapping.FirstString(raw, "InvoiceNumber", "Number"),
		ClientGroupKey: clientKey,
		Status:         mapping.FirstString(raw, "Status", "InvoiceStatus"),
		InvoiceDate:    invoiceDate,
		DueDate:        mapping.FirstDate(raw, "DueDate"),
		Amount:         amount,
		Tax:            tax,
		Total:          total,
	}
}
