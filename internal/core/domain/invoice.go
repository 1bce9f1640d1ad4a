package domain

import (
	"fmt"
	"time"
)

// InvoicePeriod is the YYMM part of an invoice number.
func InvoicePeriod(at time.Time) string {
	return at.Format("0601")
}

// FormatInvoiceNumber renders {PREFIX}{YY}{MM}{SEQ5}.
func FormatInvoiceNumber(prefix string, at time.Time, seq int64) string {
	return fmt.Sprintf("%s%s%05d", prefix, InvoicePeriod(at), seq)
}
