package mapping

import (
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/models"
)

// ToModelLedgerEntry converts a domain ledger entry to its row.
func ToModelLedgerEntry(e domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerEntryID: e.LedgerEntryID,
		EntryType:     e.EntryType,
		Direction:     int16(e.Direction),
		Amount:        e.Amount.Minor(),
		Category:      string(e.Category),
		RelatedDocID:  e.RelatedDocID,
		Metal:         string(e.Metal),
		Description:   e.Description,
		EntryDate:     e.EntryDate,
		AuditFields:   ToModelAuditFields(e.AuditFields),
	}
}

// ToDomainLedgerEntry converts a ledger row to the domain entry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID: m.LedgerEntryID,
		EntryType:     m.EntryType,
		Direction:     domain.LedgerDirection(m.Direction),
		Amount:        domain.Money(m.Amount),
		Category:      domain.LedgerCategory(m.Category),
		RelatedDocID:  m.RelatedDocID,
		Metal:         domain.Metal(m.Metal),
		Description:   m.Description,
		EntryDate:     m.EntryDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts ledger rows.
func ToDomainLedgerEntrySlice(rows []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(rows))
	for i, r := range rows {
		out[i] = ToDomainLedgerEntry(r)
	}
	return out
}
