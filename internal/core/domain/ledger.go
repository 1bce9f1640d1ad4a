package domain

import (
	"fmt"
	"time"
)

// LedgerCategory classifies a cash-flow record.
type LedgerCategory string

const (
	CategoryIncome  LedgerCategory = "INCOME"
	CategoryExpense LedgerCategory = "EXPENSE"
)

// LedgerDirection is +1 for money in and -1 for money out.
type LedgerDirection int

const (
	DirectionIn  LedgerDirection = 1
	DirectionOut LedgerDirection = -1
)

// LedgerEntry is the generic cash-flow record mirroring a metal transaction.
type LedgerEntry struct {
	LedgerEntryID string          `json:"ledgerEntryId"`
	EntryType     string          `json:"entryType"`
	Direction     LedgerDirection `json:"direction"`
	Amount        Money           `json:"amount"`
	Category      LedgerCategory  `json:"category"`
	RelatedDocID  string          `json:"relatedDocId"`
	Metal         Metal           `json:"metal"`
	Description   string          `json:"description"`
	EntryDate     time.Time       `json:"entryDate"`
	AuditFields
}

// SignedAmount is the amount with the direction applied.
func (e LedgerEntry) SignedAmount() Money {
	return e.Amount * Money(e.Direction)
}

// MirrorsTransaction reports whether the entry still matches the transaction it mirrors.
func (e LedgerEntry) MirrorsTransaction(t MetalTransaction) bool {
	dir, cat := LedgerClassification(t.TransactionType)
	return e.RelatedDocID == t.TransactionID && e.Amount == t.Total && e.Direction == dir && e.Category == cat
}

// LedgerClassification maps a metal transaction direction to its cash-flow sign and category.
func LedgerClassification(t TransactionType) (LedgerDirection, LedgerCategory) {
	if t == Sell {
		return DirectionIn, CategoryIncome
	}
	return DirectionOut, CategoryExpense
}

// LedgerEntryType is e.g. GOLD_SELL.
func LedgerEntryType(m Metal, t TransactionType) string {
	return fmt.Sprintf("%s_%s", m, t)
}

// NewMirrorLedgerEntry builds the ledger entry for a transaction. The caller assigns the id.
func NewMirrorLedgerEntry(id string, t MetalTransaction) LedgerEntry {
	dir, cat := LedgerClassification(t.TransactionType)
	return LedgerEntry{
		LedgerEntryID: id,
		EntryType:     LedgerEntryType(t.Metal, t.TransactionType),
		Direction:     dir,
		Amount:        t.Total,
		Category:      cat,
		RelatedDocID:  t.TransactionID,
		Metal:         t.Metal,
		Description:   fmt.Sprintf("%s %s %s", t.Metal.Title(), t.TransactionType, t.InvoiceNumber),
		EntryDate:     t.CreatedAt,
		AuditFields: AuditFields{
			CreatedAt:     t.LastUpdatedAt,
			CreatedBy:     t.LastUpdatedBy,
			LastUpdatedAt: t.LastUpdatedAt,
			LastUpdatedBy: t.LastUpdatedBy,
		},
	}
}

// LedgerFilter narrows ledger listings.
type LedgerFilter struct {
	Category  *LedgerCategory
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// LedgerSummary totals ledger entries over a window.
type LedgerSummary struct {
	Income     Money `json:"income"`
	Expense    Money `json:"expense"`
	Net        Money `json:"net"`
	EntryCount int   `json:"entryCount"`
}

// ReconciliationResult counts the repairs made by a reconciliation run.
type ReconciliationResult struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Examined int `json:"examined"`
}
