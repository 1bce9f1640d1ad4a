package services

import (
	"context"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
)

// LedgerSvcFacade exposes the cash-flow mirror of metal transactions.
type LedgerSvcFacade interface {
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, int, error)
	Summary(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error)

	// Reconcile repairs missing or stale mirrors and removes orphaned entries.
	Reconcile(ctx context.Context) (*domain.ReconciliationResult, error)
}
