// Package memory keeps every repository in process memory behind one lock.
// It backs STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
)

// Store implements every repository port. A write that touches a transaction
// and its ledger entry happens under a single lock acquisition.
type Store struct {
	mu               sync.RWMutex
	transactions     map[string]domain.MetalTransaction
	txnByInvoice     map[string]string
	ledger           map[string]domain.LedgerEntry
	ledgerByDoc      map[string]string
	customers        map[string]domain.Customer
	invoiceSequences map[string]int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		transactions:     map[string]domain.MetalTransaction{},
		txnByInvoice:     map[string]string{},
		ledger:           map[string]domain.LedgerEntry{},
		ledgerByDoc:      map[string]string{},
		customers:        map[string]domain.Customer{},
		invoiceSequences: map[string]int64{},
	}
}

// NewRepositoryProvider wires one store into every repository slot.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MetalTransactionRepo: s,
		LedgerRepo:           s,
		CustomerRepo:         s,
		InvoiceSequenceRepo:  s,
	}
}

var (
	_ portsrepo.MetalTransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade           = (*Store)(nil)
	_ portsrepo.CustomerRepositoryFacade         = (*Store)(nil)
	_ portsrepo.InvoiceSequenceRepository        = (*Store)(nil)
)

func cloneTransaction(t domain.MetalTransaction) domain.MetalTransaction {
	out := t
	out.Items = make([]domain.LineItem, len(t.Items))
	for i, it := range t.Items {
		if it.Photos != nil {
			it.Photos = append([]string(nil), it.Photos...)
		}
		out.Items[i] = it
	}
	if t.Counterparty != nil {
		cp := *t.Counterparty
		if cp.CustomerID != nil {
			id := *cp.CustomerID
			cp.CustomerID = &id
		}
		if cp.Supplier != nil {
			sup := *cp.Supplier
			cp.Supplier = &sup
		}
		out.Counterparty = &cp
	}
	if t.MarketRates != nil {
		snap := *t.MarketRates
		snap.Rates = make(map[domain.Purity]domain.Money, len(t.MarketRates.Rates))
		for k, v := range t.MarketRates.Rates {
			snap.Rates[k] = v
		}
		out.MarketRates = &snap
	}
	if t.LedgerEntryID != nil {
		id := *t.LedgerEntryID
		out.LedgerEntryID = &id
	}
	return out
}

// --- metal transactions ---

func (s *Store) SaveMetalTransaction(_ context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[txn.TransactionID]; exists {
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrConflict)
	}
	if _, taken := s.txnByInvoice[txn.InvoiceNumber]; taken {
		return fmt.Errorf("invoice number %s: %w", txn.InvoiceNumber, apperrors.ErrConflict)
	}
	s.transactions[txn.TransactionID] = cloneTransaction(txn)
	s.txnByInvoice[txn.InvoiceNumber] = txn.TransactionID
	s.upsertLedgerLocked(entry)
	return nil
}

func (s *Store) UpdateMetalTransaction(_ context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.transactions[txn.TransactionID]
	if !ok || existing.Metal != txn.Metal {
		return "", apperrors.ErrNotFound
	}
	updated := cloneTransaction(txn)
	// Identity and numbering never change on update.
	updated.TransactionType = existing.TransactionType
	updated.Counterparty = existing.Counterparty
	updated.InvoiceNumber = existing.InvoiceNumber
	updated.MarketRates = existing.MarketRates
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy

	id := s.upsertLedgerLocked(entry)
	updated.LedgerEntryID = &id
	s.transactions[txn.TransactionID] = updated
	return id, nil
}

func (s *Store) DeleteMetalTransaction(_ context.Context, metal domain.Metal, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.transactions[transactionID]
	if !ok || existing.Metal != metal {
		return apperrors.ErrNotFound
	}
	delete(s.transactions, transactionID)
	delete(s.txnByInvoice, existing.InvoiceNumber)
	if id, ok := s.ledgerByDoc[transactionID]; ok {
		delete(s.ledger, id)
		delete(s.ledgerByDoc, transactionID)
	}
	if existing.LedgerEntryID != nil {
		if e, ok := s.ledger[*existing.LedgerEntryID]; ok {
			delete(s.ledger, e.LedgerEntryID)
			delete(s.ledgerByDoc, e.RelatedDocID)
		}
	}
	return nil
}

func (s *Store) SyncLedgerEntry(_ context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.transactions[txn.TransactionID]
	if !ok || existing.Metal != txn.Metal {
		return "", apperrors.ErrNotFound
	}
	id := s.upsertLedgerLocked(entry)
	existing.LedgerEntryID = &id
	s.transactions[txn.TransactionID] = existing
	return id, nil
}

// upsertLedgerLocked keeps one entry per related document, preserving the
// existing id and creation audit fields. Callers hold the write lock.
func (s *Store) upsertLedgerLocked(entry domain.LedgerEntry) string {
	if id, ok := s.ledgerByDoc[entry.RelatedDocID]; ok {
		current := s.ledger[id]
		entry.LedgerEntryID = id
		entry.EntryDate = current.EntryDate
		entry.CreatedAt = current.CreatedAt
		entry.CreatedBy = current.CreatedBy
	}
	s.ledger[entry.LedgerEntryID] = entry
	s.ledgerByDoc[entry.RelatedDocID] = entry.LedgerEntryID
	return entry.LedgerEntryID
}

func (s *Store) FindMetalTransactionByID(_ context.Context, metal domain.Metal, transactionID string) (*domain.MetalTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[transactionID]
	if !ok || t.Metal != metal {
		return nil, apperrors.ErrNotFound
	}
	out := cloneTransaction(t)
	return &out, nil
}

func matches(t domain.MetalTransaction, f domain.MetalTransactionFilter) bool {
	if f.Metal != "" && t.Metal != f.Metal {
		return false
	}
	if f.TransactionType != nil && t.TransactionType != *f.TransactionType {
		return false
	}
	if f.CustomerID != nil {
		id, ok := t.CustomerID()
		if !ok || id != *f.CustomerID {
			return false
		}
	}
	if f.StartDate != nil && t.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !t.CreatedAt.Before(*f.EndDate) {
		return false
	}
	if f.Purity != nil && !t.HasPurity(*f.Purity) {
		return false
	}
	if f.PaymentStatus != nil && t.PaymentStatus != *f.PaymentStatus {
		return false
	}
	return true
}

// compareBy orders two transactions by a sort key, ascending.
func compareBy(key string, a, b domain.MetalTransaction) int {
	switch key {
	case domain.SortByTotalAmount:
		switch {
		case a.Total < b.Total:
			return -1
		case a.Total > b.Total:
			return 1
		}
		return 0
	case domain.SortByInvoiceNumber:
		return strings.Compare(a.InvoiceNumber, b.InvoiceNumber)
	case domain.SortByTotalWeight:
		return a.TotalWeight.Decimal().Cmp(b.TotalWeight.Decimal())
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func (s *Store) ListMetalTransactions(_ context.Context, filter domain.MetalTransactionFilter) ([]domain.MetalTransaction, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.MetalTransaction, 0)
	for _, t := range s.transactions {
		if matches(t, filter) {
			matched = append(matched, t)
		}
	}

	desc := filter.SortOrder != domain.SortAsc
	sort.Slice(matched, func(i, j int) bool {
		c := compareBy(filter.SortBy, matched[i], matched[j])
		if c == 0 {
			c = strings.Compare(matched[i].TransactionID, matched[j].TransactionID)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}

	page := make([]domain.MetalTransaction, 0, end-start)
	for _, t := range matched[start:end] {
		page = append(page, cloneTransaction(t))
	}
	return page, total, nil
}

func (s *Store) FindUnreconciledMetalTransactions(_ context.Context, limit int) ([]domain.MetalTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stale := make([]domain.MetalTransaction, 0)
	for _, t := range s.transactions {
		id, ok := s.ledgerByDoc[t.TransactionID]
		if ok && t.LedgerEntryID != nil && *t.LedgerEntryID == id && s.ledger[id].MirrorsTransaction(t) {
			continue
		}
		stale = append(stale, cloneTransaction(t))
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].CreatedAt.Before(stale[j].CreatedAt) })
	if limit > 0 && len(stale) > limit {
		stale = stale[:limit]
	}
	return stale, nil
}

// --- invoice sequences ---

func (s *Store) NextInvoiceSequence(_ context.Context, prefix, period string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := prefix + "/" + period
	s.invoiceSequences[key]++
	return s.invoiceSequences[key], nil
}

// --- ledger ---

func (s *Store) FindLedgerEntryByID(_ context.Context, ledgerEntryID string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.ledger[ledgerEntryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *Store) FindLedgerEntryByRelatedDoc(_ context.Context, relatedDocID string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.ledgerByDoc[relatedDocID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e := s.ledger[id]
	return &e, nil
}

func ledgerMatches(e domain.LedgerEntry, f domain.LedgerFilter) bool {
	if f.Category != nil && e.Category != *f.Category {
		return false
	}
	if f.StartDate != nil && e.EntryDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !e.EntryDate.Before(*f.EndDate) {
		return false
	}
	return true
}

func (s *Store) ListLedgerEntries(_ context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.LedgerEntry, 0)
	for _, e := range s.ledger {
		if ledgerMatches(e, filter) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].EntryDate.Equal(matched[j].EntryDate) {
			return matched[i].EntryDate.After(matched[j].EntryDate)
		}
		return matched[i].LedgerEntryID > matched[j].LedgerEntryID
	})

	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total, nil
}

func (s *Store) SummarizeLedger(_ context.Context, filter domain.LedgerFilter) (domain.LedgerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary domain.LedgerSummary
	for _, e := range s.ledger {
		if !ledgerMatches(e, filter) {
			continue
		}
		summary.EntryCount++
		switch e.Category {
		case domain.CategoryIncome:
			summary.Income = summary.Income.Add(e.Amount)
		case domain.CategoryExpense:
			summary.Expense = summary.Expense.Add(e.Amount)
		}
	}
	summary.Net = summary.Income.Sub(summary.Expense)
	return summary, nil
}

func (s *Store) FindOrphanLedgerEntries(_ context.Context, limit int) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orphans := make([]domain.LedgerEntry, 0)
	for _, e := range s.ledger {
		if _, ok := s.transactions[e.RelatedDocID]; !ok {
			orphans = append(orphans, e)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].EntryDate.Before(orphans[j].EntryDate) })
	if limit > 0 && len(orphans) > limit {
		orphans = orphans[:limit]
	}
	return orphans, nil
}

func (s *Store) DeleteLedgerEntry(_ context.Context, ledgerEntryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.ledger[ledgerEntryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(s.ledger, ledgerEntryID)
	if s.ledgerByDoc[e.RelatedDocID] == ledgerEntryID {
		delete(s.ledgerByDoc, e.RelatedDocID)
	}
	return nil
}

// ImportLedgerEntry stores an entry as-is, replacing any entry for the same
// related document. It models rows written outside the service, such as a
// data migration, and is what reconciliation repairs.
func (s *Store) ImportLedgerEntry(entry domain.LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.ledgerByDoc[entry.RelatedDocID]; ok {
		delete(s.ledger, id)
	}
	s.ledger[entry.LedgerEntryID] = entry
	s.ledgerByDoc[entry.RelatedDocID] = entry.LedgerEntryID
}

// --- customers ---

func (s *Store) SaveCustomer(_ context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[customer.CustomerID]; exists {
		return fmt.Errorf("customer %s: %w", customer.CustomerID, apperrors.ErrDuplicate)
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *Store) FindCustomerByID(_ context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}
