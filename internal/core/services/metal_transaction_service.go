package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/analytics"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pagination"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pricing"
)

// DefaultInvoiceRetryAttempts bounds re-allocation after an invoice number collision.
const DefaultInvoiceRetryAttempts = 3

// metalTransactionService implements MetalTransactionSvcFacade for every metal.
type metalTransactionService struct {
	BaseService
	serviceOptions
	txnRepo        portsrepo.MetalTransactionRepositoryFacade
	ledgerRepo     portsrepo.LedgerReader
	customerRepo   portsrepo.CustomerReader
	invoices       *InvoiceAllocator
	rates          portssvc.MarketRateSvc
	invoiceRetries int
}

// NewMetalTransactionService creates the transaction lifecycle service. rates may be nil,
// in which case fetchCurrentRates requests are served without a snapshot.
func NewMetalTransactionService(repos portsrepo.RepositoryProvider, rates portssvc.MarketRateSvc, invoiceRetries int, opts ...Option) portssvc.MetalTransactionSvcFacade {
	o := newServiceOptions(opts)
	if invoiceRetries < 1 {
		invoiceRetries = DefaultInvoiceRetryAttempts
	}
	return &metalTransactionService{
		serviceOptions: o,
		txnRepo:        repos.MetalTransactionRepo,
		ledgerRepo:     repos.LedgerRepo,
		customerRepo:   repos.CustomerRepo,
		invoices:       NewInvoiceAllocator(repos.InvoiceSequenceRepo, o.loc),
		rates:          rates,
		invoiceRetries: invoiceRetries,
	}
}

var _ portssvc.MetalTransactionSvcFacade = (*metalTransactionService)(nil)

func profileOrValidation(metal domain.Metal) (domain.MetalProfile, error) {
	profile, err := domain.ProfileFor(metal)
	if err != nil {
		return domain.MetalProfile{}, apperrors.NewValidationError("metal", err.Error())
	}
	return profile, nil
}

func (s *metalTransactionService) CreateTransaction(ctx context.Context, metal domain.Metal, req dto.CreateMetalTransactionRequest, userID string) (*domain.MetalTransaction, error) {
	profile, err := profileOrValidation(metal)
	if err != nil {
		return nil, err
	}

	items, err := dto.ToDomainLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = domain.PaymentCash
	}
	draft := domain.MetalTransaction{
		TransactionID:   s.newID(),
		Metal:           metal,
		TransactionType: req.TransactionType,
		Items:           items,
		AdvancePaid:     domain.MoneyFromMajor(req.AdvanceAmount),
		PaymentMode:     paymentMode,
		Notes:           req.Notes,
		BillNumber:      req.BillNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Everything is validated before the first write.
	txn, err := pricing.RecomputeTransaction(profile, draft)
	if err != nil {
		s.LogDebug(ctx, "Rejected metal transaction", slog.String("metal", string(metal)), slog.String("error", err.Error()))
		return nil, err
	}
	txn.Counterparty, err = s.resolveCounterparty(ctx, txn.TransactionType, dto.ResolveCounterparty(req.Counterparty, req.Customer))
	if err != nil {
		return nil, err
	}
	if req.FetchCurrentRates {
		txn.MarketRates = s.snapshotRates(ctx, metal)
	}

	for attempt := 1; attempt <= s.invoiceRetries; attempt++ {
		invoice, err := s.invoices.Allocate(ctx, metal, txn.TransactionType, now)
		if err != nil {
			s.LogError(ctx, err, "Failed to allocate invoice number", slog.String("metal", string(metal)))
			return nil, err
		}
		txn.InvoiceNumber = invoice
		entryID := s.newID()
		txn.LedgerEntryID = &entryID

		err = s.txnRepo.SaveMetalTransaction(ctx, txn, domain.NewMirrorLedgerEntry(entryID, txn))
		if err == nil {
			s.LogInfo(ctx, "Metal transaction created",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("invoice_number", txn.InvoiceNumber),
				slog.String("total", txn.Total.String()))
			return &txn, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save metal transaction", slog.String("transaction_id", txn.TransactionID))
			return nil, fmt.Errorf("failed to save metal transaction: %w", err)
		}
		s.LogWarn(ctx, "Invoice number collision, re-allocating",
			slog.String("invoice_number", invoice),
			slog.Int("attempt", attempt))
	}

	return nil, apperrors.NewAppError(http.StatusConflict,
		fmt.Sprintf("could not allocate a unique invoice number after %d attempts", s.invoiceRetries),
		apperrors.ErrConflict)
}

// resolveCounterparty validates the requested counterparty and stamps its display name.
func (s *metalTransactionService) resolveCounterparty(ctx context.Context, t domain.TransactionType, req *dto.CounterpartyRequest) (*domain.Counterparty, error) {
	if req == nil {
		return nil, nil
	}
	cp := req.ToDomain()
	switch cp.Role {
	case domain.RoleCustomer:
		if cp.CustomerID == nil || *cp.CustomerID == "" {
			return nil, apperrors.NewValidationError("counterparty.customerId", "is required for CUSTOMER counterparties")
		}
		if err := validateID("counterparty.customerId", *cp.CustomerID); err != nil {
			return nil, err
		}
		customer, err := s.customerRepo.FindCustomerByID(ctx, *cp.CustomerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("customer %s: %w", *cp.CustomerID, apperrors.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to look up customer: %w", err)
		}
		cp.Supplier = nil
		cp.DisplayName = customer.Name
	case domain.RoleSupplier:
		if t != domain.Buy {
			return nil, apperrors.NewValidationError("counterparty.role", "SUPPLIER is only valid for BUY transactions")
		}
		if cp.Supplier == nil || strings.TrimSpace(cp.Supplier.Name) == "" {
			return nil, apperrors.NewValidationError("counterparty.supplier.name", "is required for SUPPLIER counterparties")
		}
		cp.CustomerID = nil
	default:
		return nil, apperrors.NewValidationError("counterparty.role", "must be CUSTOMER or SUPPLIER")
	}
	return cp, nil
}

// snapshotRates never fails the caller; a missing snapshot is acceptable.
func (s *metalTransactionService) snapshotRates(ctx context.Context, metal domain.Metal) *domain.MarketRatesSnapshot {
	if s.rates == nil {
		s.LogDebug(ctx, "No market rate service configured, skipping snapshot")
		return nil
	}
	rates, err := s.rates.CurrentRates(ctx)
	if err != nil {
		s.LogWarn(ctx, "Market rates unavailable, creating transaction without snapshot", slog.String("error", err.Error()))
		return nil
	}
	snapshot, ok := rates.SnapshotFor(metal)
	if !ok {
		s.LogWarn(ctx, "Market rates carry no quote for metal", slog.String("metal", string(metal)))
		return nil
	}
	return snapshot
}

func (s *metalTransactionService) UpdateTransaction(ctx context.Context, metal domain.Metal, transactionID string, req dto.UpdateMetalTransactionRequest, userID string) (*domain.MetalTransaction, error) {
	profile, err := profileOrValidation(metal)
	if err != nil {
		return nil, err
	}
	if err := validateID("id", transactionID); err != nil {
		return nil, err
	}

	existing, err := s.txnRepo.FindMetalTransactionByID(ctx, metal, transactionID)
	if err != nil {
		return nil, err
	}

	var immutable apperrors.ValidationErrors
	if req.TransactionType != nil && *req.TransactionType != existing.TransactionType {
		immutable.Add("transactionType", "cannot be changed after creation")
	}
	if cp := dto.ResolveCounterparty(req.Counterparty, req.Customer); cp != nil && !cp.ToDomain().SameIdentity(existing.Counterparty) {
		immutable.Add("counterparty", "cannot be changed after creation")
	}
	if err := immutable.OrNil(); err != nil {
		return nil, err
	}

	changed := *existing
	if req.Items != nil {
		if changed.Items, err = dto.ToDomainLineItems(req.Items); err != nil {
			return nil, err
		}
	}
	if req.AdvanceAmount != nil {
		changed.AdvancePaid = domain.MoneyFromMajor(*req.AdvanceAmount)
	}
	if req.PaymentMode != nil {
		changed.PaymentMode = *req.PaymentMode
	}
	if req.Notes != nil {
		changed.Notes = *req.Notes
	}
	if req.BillNumber != nil {
		changed.BillNumber = *req.BillNumber
	}
	changed.LastUpdatedAt = s.now()
	changed.LastUpdatedBy = userID

	updated, err := pricing.RecomputeTransaction(profile, changed)
	if err != nil {
		return nil, err
	}

	entryID := s.newID()
	if existing.LedgerEntryID != nil {
		entryID = *existing.LedgerEntryID
	}
	effectiveID, err := s.txnRepo.UpdateMetalTransaction(ctx, updated, domain.NewMirrorLedgerEntry(entryID, updated))
	if err != nil {
		s.LogError(ctx, err, "Failed to update metal transaction", slog.String("transaction_id", transactionID))
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update metal transaction: %w", err)
	}
	updated.LedgerEntryID = &effectiveID

	s.LogInfo(ctx, "Metal transaction updated",
		slog.String("transaction_id", transactionID),
		slog.String("total", updated.Total.String()))
	return &updated, nil
}

func (s *metalTransactionService) DeleteTransaction(ctx context.Context, metal domain.Metal, transactionID string, userID string) error {
	if _, err := profileOrValidation(metal); err != nil {
		return err
	}
	if err := validateID("id", transactionID); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteMetalTransaction(ctx, metal, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete metal transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete metal transaction: %w", err)
	}
	s.LogInfo(ctx, "Metal transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("user_id", userID))
	return nil
}

func (s *metalTransactionService) SyncLedgerEntry(ctx context.Context, metal domain.Metal, transactionID string, userID string) (*domain.LedgerEntry, error) {
	if _, err := profileOrValidation(metal); err != nil {
		return nil, err
	}
	if err := validateID("id", transactionID); err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindMetalTransactionByID(ctx, metal, transactionID)
	if err != nil {
		return nil, err
	}
	id, err := syncMirror(ctx, s.txnRepo, *txn, s.newID, s.now(), userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sync ledger entry", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return s.ledgerRepo.FindLedgerEntryByID(ctx, id)
}

func (s *metalTransactionService) GetTransaction(ctx context.Context, metal domain.Metal, transactionID string) (*domain.MetalTransaction, error) {
	if _, err := profileOrValidation(metal); err != nil {
		return nil, err
	}
	if err := validateID("id", transactionID); err != nil {
		return nil, err
	}
	return s.txnRepo.FindMetalTransactionByID(ctx, metal, transactionID)
}

func (s *metalTransactionService) ListTransactions(ctx context.Context, filter domain.MetalTransactionFilter) ([]domain.MetalTransaction, int, error) {
	profile, err := profileOrValidation(filter.Metal)
	if err != nil {
		return nil, 0, err
	}

	var errs apperrors.ValidationErrors
	if filter.CustomerID != nil {
		if err := validateID("customer", *filter.CustomerID); err != nil {
			errs.Add("customer", "must be a valid UUID")
		}
	}
	if filter.SortBy == "" {
		filter.SortBy = domain.SortByCreatedAt
	} else if !domain.IsValidSortKey(filter.SortBy) {
		errs.Add("sortBy", "must be one of createdAt, totalAmount, invoiceNumber, totalWeight")
	}
	switch filter.SortOrder {
	case "":
		filter.SortOrder = domain.SortDesc
	case domain.SortAsc, domain.SortDesc:
	default:
		errs.Add("sortOrder", "must be asc or desc")
	}
	if filter.TransactionType != nil && !filter.TransactionType.IsValid() {
		errs.Add("transactionType", "must be BUY or SELL")
	}
	if filter.Purity != nil && !profile.SupportsPurity(*filter.Purity) {
		errs.Add("purity", fmt.Sprintf("must be one of %s", strings.Join(profile.PurityNames(), ", ")))
	}
	if filter.PaymentStatus != nil && !filter.PaymentStatus.IsValid() {
		errs.Add("paymentStatus", "must be PENDING, PARTIAL or PAID")
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		errs.Add("endDate", "must not be before startDate")
	}
	if err := errs.OrNil(); err != nil {
		return nil, 0, err
	}

	txns, total, err := s.txnRepo.ListMetalTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list metal transactions", slog.String("metal", string(filter.Metal)))
		return nil, 0, fmt.Errorf("failed to list metal transactions: %w", err)
	}
	return txns, total, nil
}

func (s *metalTransactionService) GetCustomerHistory(ctx context.Context, metal domain.Metal, customerID string, page pagination.Params) (*domain.CustomerHistory, error) {
	if _, err := profileOrValidation(metal); err != nil {
		return nil, err
	}
	if err := validateID("customerId", customerID); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	pageFilter := domain.MetalTransactionFilter{
		Metal:      metal,
		CustomerID: &customerID,
		SortBy:     domain.SortByCreatedAt,
		SortOrder:  domain.SortDesc,
		Limit:      page.Limit,
		Offset:     page.Offset(),
	}
	txns, total, err := s.txnRepo.ListMetalTransactions(ctx, pageFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer transactions: %w", err)
	}

	// Stats cover every transaction, not just the page.
	all, _, err := s.txnRepo.ListMetalTransactions(ctx, domain.MetalTransactionFilter{
		Metal:      metal,
		CustomerID: &customerID,
		SortBy:     domain.SortByCreatedAt,
		SortOrder:  domain.SortDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load customer transactions for stats: %w", err)
	}

	return &domain.CustomerHistory{
		Customer:     *customer,
		Transactions: txns,
		Total:        total,
		Stats:        analytics.CustomerHistory(all),
	}, nil
}
