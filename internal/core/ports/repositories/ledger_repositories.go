package repositories

import (
	"context"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	FindLedgerEntryByID(ctx context.Context, ledgerEntryID string) (*domain.LedgerEntry, error)
	FindLedgerEntryByRelatedDoc(ctx context.Context, relatedDocID string) (*domain.LedgerEntry, error)
	ListLedgerEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, int, error)
	SummarizeLedger(ctx context.Context, filter domain.LedgerFilter) (domain.LedgerSummary, error)
	// FindOrphanLedgerEntries returns entries whose related transaction no longer exists.
	FindOrphanLedgerEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries that are not tied to a transaction write.
type LedgerWriter interface {
	DeleteLedgerEntry(ctx context.Context, ledgerEntryID string) error
}

// LedgerRepositoryFacade combines all ledger repository operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
