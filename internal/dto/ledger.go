package dto

import (
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	LedgerEntryID string                 `json:"ledgerEntryId"`
	EntryType     string                 `json:"entryType"`
	Direction     domain.LedgerDirection `json:"direction"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      domain.LedgerCategory  `json:"category"`
	RelatedDocID  string                 `json:"relatedDocId"`
	Metal         domain.Metal           `json:"metal"`
	Description   string                 `json:"description"`
	EntryDate     time.Time              `json:"entryDate"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToLedgerEntryResponse converts a domain ledger entry.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerEntryID: e.LedgerEntryID,
		EntryType:     e.EntryType,
		Direction:     e.Direction,
		Amount:        e.Amount.Major(),
		Category:      e.Category,
		RelatedDocID:  e.RelatedDocID,
		Metal:         e.Metal,
		Description:   e.Description,
		EntryDate:     e.EntryDate,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ListLedgerEntriesResponse is a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries    []LedgerEntryResponse `json:"entries"`
	Pagination pagination.Meta       `json:"pagination"`
}

// ToListLedgerEntriesResponse converts a page of ledger entries.
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry, p pagination.Params, total int) ListLedgerEntriesResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToLedgerEntryResponse(e)
	}
	return ListLedgerEntriesResponse{Entries: out, Pagination: pagination.NewMeta(p, total)}
}

// LedgerSummaryResponse is LedgerSummary in rupees.
type LedgerSummaryResponse struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Net        decimal.Decimal `json:"net"`
	EntryCount int             `json:"entryCount"`
}

// ToLedgerSummaryResponse converts a ledger summary.
func ToLedgerSummaryResponse(s domain.LedgerSummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		Income:     s.Income.Major(),
		Expense:    s.Expense.Major(),
		Net:        s.Net.Major(),
		EntryCount: s.EntryCount,
	}
}
