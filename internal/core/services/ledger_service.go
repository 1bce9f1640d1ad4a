package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
)

// ReconcilerUserID is recorded as the updater of entries repaired by Reconcile.
const ReconcilerUserID = "reconciler"

// reconcileBatchSize bounds how many rows one reconciliation run examines per kind.
const reconcileBatchSize = 500

type ledgerService struct {
	BaseService
	serviceOptions
	ledgerRepo portsrepo.LedgerRepositoryFacade
	txnRepo    portsrepo.MetalTransactionRepositoryFacade
}

// NewLedgerService creates the service behind /api/ledger and the reconciliation job.
func NewLedgerService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.LedgerSvcFacade {
	return &ledgerService{
		serviceOptions: newServiceOptions(opts),
		ledgerRepo:     repos.LedgerRepo,
		txnRepo:        repos.MetalTransactionRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func validateLedgerFilter(filter domain.LedgerFilter) error {
	var errs apperrors.ValidationErrors
	if filter.Category != nil && *filter.Category != domain.CategoryIncome && *filter.Category != domain.CategoryExpense {
		errs.Add("category", "must be INCOME or EXPENSE")
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		errs.Add("endDate", "must not be before startDate")
	}
	return errs.OrNil()
}

func (s *ledgerService) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, int, error) {
	if err := validateLedgerFilter(filter); err != nil {
		return nil, 0, err
	}
	entries, total, err := s.ledgerRepo.ListLedgerEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, total, nil
}

func (s *ledgerService) Summary(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error) {
	filter.Category = nil
	if err := validateLedgerFilter(filter); err != nil {
		return nil, err
	}
	summary, err := s.ledgerRepo.SummarizeLedger(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize ledger")
		return nil, fmt.Errorf("failed to summarize ledger: %w", err)
	}
	summary.Net = summary.Income.Sub(summary.Expense)
	return &summary, nil
}

// Reconcile creates missing mirrors, corrects drifted ones and removes entries
// whose transaction is gone. Failures on single rows are logged and the run
// continues; the joined error is returned alongside the partial result.
func (s *ledgerService) Reconcile(ctx context.Context) (*domain.ReconciliationResult, error) {
	result := &domain.ReconciliationResult{}
	var failures []error

	stale, err := s.txnRepo.FindUnreconciledMetalTransactions(ctx, reconcileBatchSize)
	if err != nil {
		s.LogError(ctx, err, "Failed to find unreconciled transactions")
		return nil, fmt.Errorf("failed to find unreconciled transactions: %w", err)
	}
	for _, txn := range stale {
		result.Examined++
		_, lookupErr := s.ledgerRepo.FindLedgerEntryByRelatedDoc(ctx, txn.TransactionID)
		missing := errors.Is(lookupErr, apperrors.ErrNotFound)
		if lookupErr != nil && !missing {
			failures = append(failures, lookupErr)
			continue
		}
		if _, err := syncMirror(ctx, s.txnRepo, txn, s.newID, s.now(), ReconcilerUserID); err != nil {
			s.LogError(ctx, err, "Failed to repair ledger entry", slog.String("transaction_id", txn.TransactionID))
			failures = append(failures, err)
			continue
		}
		if missing {
			result.Created++
		} else {
			result.Updated++
		}
	}

	orphans, err := s.ledgerRepo.FindOrphanLedgerEntries(ctx, reconcileBatchSize)
	if err != nil {
		s.LogError(ctx, err, "Failed to find orphan ledger entries")
		return result, fmt.Errorf("failed to find orphan ledger entries: %w", err)
	}
	for _, entry := range orphans {
		result.Examined++
		if err := s.ledgerRepo.DeleteLedgerEntry(ctx, entry.LedgerEntryID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete orphan ledger entry", slog.String("ledger_entry_id", entry.LedgerEntryID))
			failures = append(failures, err)
			continue
		}
		result.Deleted++
	}

	s.LogInfo(ctx, "Ledger reconciliation finished",
		slog.Int("examined", result.Examined),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("deleted", result.Deleted),
		slog.Int("failed", len(failures)))

	if len(failures) > 0 {
		return result, fmt.Errorf("reconciliation left %d rows unrepaired: %w", len(failures), errors.Join(failures...))
	}
	return result, nil
}

// syncMirror upserts the ledger entry for txn, reusing its linked id when present.
// It returns the id of the entry that now mirrors the transaction.
func syncMirror(ctx context.Context, repo portsrepo.MetalTransactionWriter, txn domain.MetalTransaction, newID func() string, now time.Time, userID string) (string, error) {
	entryID := ""
	if txn.LedgerEntryID != nil {
		entryID = *txn.LedgerEntryID
	} else {
		entryID = newID()
	}
	entry := domain.NewMirrorLedgerEntry(entryID, txn)
	entry.CreatedAt = now
	entry.CreatedBy = userID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	id, err := repo.SyncLedgerEntry(ctx, txn, entry)
	if err != nil {
		return "", fmt.Errorf("failed to sync ledger entry for transaction %s: %w", txn.TransactionID, err)
	}
	return id, nil
}
