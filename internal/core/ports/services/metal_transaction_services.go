package services

import (
	"context"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pagination"
)

// MetalTransactionReaderSvc defines read operations for metal transactions.
type MetalTransactionReaderSvc interface {
	// GetTransaction returns apperrors.ErrNotFound if the id is unknown for the metal.
	GetTransaction(ctx context.Context, metal domain.Metal, transactionID string) (*domain.MetalTransaction, error)

	// ListTransactions returns one page of transactions and the total number of matches.
	ListTransactions(ctx context.Context, filter domain.MetalTransactionFilter) ([]domain.MetalTransaction, int, error)

	// GetCustomerHistory returns a page of a customer's transactions with lifetime stats.
	GetCustomerHistory(ctx context.Context, metal domain.Metal, customerID string, page pagination.Params) (*domain.CustomerHistory, error)
}

// MetalTransactionWriterSvc defines write operations for metal transactions.
type MetalTransactionWriterSvc interface {
	// CreateTransaction prices, numbers and persists a transaction together with its ledger mirror.
	CreateTransaction(ctx context.Context, metal domain.Metal, req dto.CreateMetalTransactionRequest, userID string) (*domain.MetalTransaction, error)

	// UpdateTransaction applies mutable changes, recomputes totals and re-syncs the ledger mirror.
	UpdateTransaction(ctx context.Context, metal domain.Metal, transactionID string, req dto.UpdateMetalTransactionRequest, userID string) (*domain.MetalTransaction, error)

	// DeleteTransaction removes the transaction and its ledger mirror together.
	DeleteTransaction(ctx context.Context, metal domain.Metal, transactionID string, userID string) error

	// SyncLedgerEntry recreates or corrects one transaction's ledger mirror.
	SyncLedgerEntry(ctx context.Context, metal domain.Metal, transactionID string, userID string) (*domain.LedgerEntry, error)
}

// MetalTransactionSvcFacade combines all metal transaction service interfaces.
type MetalTransactionSvcFacade interface {
	MetalTransactionReaderSvc
	MetalTransactionWriterSvc
}
