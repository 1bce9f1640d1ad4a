package repositories

import (
	"context"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
)

// MetalTransactionReader defines read operations for metal transactions.
type MetalTransactionReader interface {
	// FindMetalTransactionByID returns apperrors.ErrNotFound when the id does not exist for the metal.
	FindMetalTransactionByID(ctx context.Context, metal domain.Metal, transactionID string) (*domain.MetalTransaction, error)
	// ListMetalTransactions returns one page of matches and the total match count.
	ListMetalTransactions(ctx context.Context, filter domain.MetalTransactionFilter) ([]domain.MetalTransaction, int, error)
	// FindUnreconciledMetalTransactions returns transactions whose ledger mirror is missing or stale.
	FindUnreconciledMetalTransactions(ctx context.Context, limit int) ([]domain.MetalTransaction, error)
}

// MetalTransactionWriter defines write operations. Every method keeps the
// transaction and its ledger mirror consistent in a single storage transaction.
type MetalTransactionWriter interface {
	// SaveMetalTransaction inserts the transaction and its ledger entry.
	// A duplicate invoice number yields apperrors.ErrConflict.
	SaveMetalTransaction(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) error
	// UpdateMetalTransaction replaces mutable fields and items and upserts the
	// ledger mirror. It returns the effective ledger entry id.
	UpdateMetalTransaction(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) (string, error)
	// DeleteMetalTransaction removes the transaction and every ledger entry referencing it.
	DeleteMetalTransaction(ctx context.Context, metal domain.Metal, transactionID string) error
	// SyncLedgerEntry upserts the ledger mirror and links it. It returns the effective ledger entry id.
	SyncLedgerEntry(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) (string, error)
}

// MetalTransactionRepositoryFacade combines all metal transaction repository operations.
type MetalTransactionRepositoryFacade interface {
	MetalTransactionReader
	MetalTransactionWriter
}

// InvoiceSequenceRepository hands out per-(prefix, period) sequence numbers atomically.
type InvoiceSequenceRepository interface {
	NextInvoiceSequence(ctx context.Context, prefix, period string) (int64, error)
}
