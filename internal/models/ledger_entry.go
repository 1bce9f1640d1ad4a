package models

import "time"

// LedgerEntry is a row of ledger_entries.
type LedgerEntry struct {
	LedgerEntryID string    `db:"ledger_entry_id"`
	EntryType     string    `db:"entry_type"`
	Direction     int16     `db:"direction"`
	Amount        int64     `db:"amount"`
	Category      string    `db:"category"`
	RelatedDocID  string    `db:"related_doc_id"`
	Metal         string    `db:"metal"`
	Description   string    `db:"description"`
	EntryDate     time.Time `db:"entry_date"`
	AuditFields
}
