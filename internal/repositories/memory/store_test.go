package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTxn(invoice string, t domain.TransactionType, total domain.Money, at time.Time) domain.MetalTransaction {
	return domain.MetalTransaction{
		TransactionID:   uuid.NewString(),
		Metal:           domain.Gold,
		TransactionType: t,
		Items: []domain.LineItem{{
			ItemName: "Ring", Purity: "22K", Weight: domain.MustGrams("10"), Total: total,
			Photos: []string{"https://img.example/1.jpg"},
		}},
		TotalWeight:   domain.MustGrams("10"),
		Total:         total,
		Subtotal:      total,
		InvoiceNumber: invoice,
		AuditFields:   domain.AuditFields{CreatedAt: at, LastUpdatedAt: at},
	}
}

func save(t *testing.T, s *Store, txn domain.MetalTransaction) domain.MetalTransaction {
	t.Helper()
	id := uuid.NewString()
	txn.LedgerEntryID = &id
	require.NoError(t, s.SaveMetalTransaction(context.Background(), txn, domain.NewMirrorLedgerEntry(id, txn)))
	return txn
}

func TestStore_SaveRejectsDuplicateInvoice(t *testing.T) {
	s := NewStore()
	save(t, s, newTxn("GS250300001", domain.Sell, 1000, base))

	dup := newTxn("GS250300001", domain.Sell, 2000, base)
	err := s.SaveMetalTransaction(context.Background(), dup, domain.NewMirrorLedgerEntry(uuid.NewString(), dup))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	entries, total, err := s.ListLedgerEntries(context.Background(), domain.LedgerFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, entries, 1)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore()
	txn := save(t, s, newTxn("GS250300001", domain.Sell, 1000, base))

	got, err := s.FindMetalTransactionByID(context.Background(), domain.Gold, txn.TransactionID)
	require.NoError(t, err)
	got.Items[0].Photos[0] = "mutated"
	got.Items[0].ItemName = "mutated"

	again, err := s.FindMetalTransactionByID(context.Background(), domain.Gold, txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, "Ring", again.Items[0].ItemName)
	assert.Equal(t, "https://img.example/1.jpg", again.Items[0].Photos[0])
}

func TestStore_FindScopedByMetal(t *testing.T) {
	s := NewStore()
	txn := save(t, s, newTxn("GS250300001", domain.Sell, 1000, base))

	_, err := s.FindMetalTransactionByID(context.Background(), domain.Silver, txn.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, s.DeleteMetalTransaction(context.Background(), domain.Silver, txn.TransactionID), apperrors.ErrNotFound)
}

func TestStore_UpdateKeepsLedgerEntryID(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	txn := save(t, s, newTxn("GS250300001", domain.Sell, 1000, base))

	changed := txn
	changed.Total = 5000
	changed.InvoiceNumber = "tampered"
	id, err := s.UpdateMetalTransaction(ctx, changed, domain.NewMirrorLedgerEntry(uuid.NewString(), changed))
	require.NoError(t, err)
	assert.Equal(t, *txn.LedgerEntryID, id)

	entry, err := s.FindLedgerEntryByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(5000), entry.Amount)

	stored, err := s.FindMetalTransactionByID(ctx, domain.Gold, txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, "GS250300001", stored.InvoiceNumber)
}

func TestStore_DeleteRemovesMirror(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	txn := save(t, s, newTxn("GS250300001", domain.Sell, 1000, base))

	require.NoError(t, s.DeleteMetalTransaction(ctx, domain.Gold, txn.TransactionID))

	_, err := s.FindLedgerEntryByRelatedDoc(ctx, txn.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, total, err := s.ListLedgerEntries(ctx, domain.LedgerFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	// The invoice number is free again for a new row.
	save(t, s, newTxn("GS250300001", domain.Sell, 1000, base))
}

func TestStore_ListFiltersSortsAndPages(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < 5; i++ {
		typ := domain.Sell
		if i%2 == 1 {
			typ = domain.Buy
		}
		save(t, s, newTxn(fmt.Sprintf("G%d", i), typ, domain.Money(100*(i+1)), base.Add(time.Duration(i)*time.Hour)))
	}

	sell := domain.Sell
	page, total, err := s.ListMetalTransactions(ctx, domain.MetalTransactionFilter{
		Metal: domain.Gold, TransactionType: &sell,
		SortBy: domain.SortByTotalAmount, SortOrder: domain.SortDesc,
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, domain.Money(500), page[0].Total)
	assert.Equal(t, domain.Money(300), page[1].Total)

	start := base.Add(time.Hour)
	end := base.Add(3 * time.Hour)
	window, total, err := s.ListMetalTransactions(ctx, domain.MetalTransactionFilter{
		Metal: domain.Gold, StartDate: &start, EndDate: &end,
		SortBy: domain.SortByCreatedAt, SortOrder: domain.SortAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "G1", window[0].InvoiceNumber)
	assert.Equal(t, "G2", window[1].InvoiceNumber)

	past, total, err := s.ListMetalTransactions(ctx, domain.MetalTransactionFilter{Metal: domain.Gold, Offset: 10, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, past)
}

func TestStore_UnreconciledAndOrphans(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	healthy := save(t, s, newTxn("G1", domain.Sell, 1000, base))
	drifted := save(t, s, newTxn("G2", domain.Sell, 2000, base.Add(time.Hour)))
	missing := save(t, s, newTxn("G3", domain.Buy, 3000, base.Add(2*time.Hour)))

	stale := domain.NewMirrorLedgerEntry(*drifted.LedgerEntryID, drifted)
	stale.Amount = 1
	s.ImportLedgerEntry(stale)
	require.NoError(t, s.DeleteLedgerEntry(ctx, *missing.LedgerEntryID))
	s.ImportLedgerEntry(domain.LedgerEntry{LedgerEntryID: uuid.NewString(), RelatedDocID: uuid.NewString(), Amount: 10})

	unreconciled, err := s.FindUnreconciledMetalTransactions(ctx, 0)
	require.NoError(t, err)
	ids := []string{}
	for _, u := range unreconciled {
		ids = append(ids, u.TransactionID)
	}
	assert.Equal(t, []string{drifted.TransactionID, missing.TransactionID}, ids)
	assert.NotContains(t, ids, healthy.TransactionID)

	orphans, err := s.FindOrphanLedgerEntries(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, orphans, 1)
}

func TestStore_SummarizeLedger(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	save(t, s, newTxn("G1", domain.Sell, 10000, base))
	save(t, s, newTxn("G2", domain.Buy, 4000, base))

	summary, err := s.SummarizeLedger(ctx, domain.LedgerFilter{})
	require.NoError(t, err)
	assert.Equal(t, domain.Money(10000), summary.Income)
	assert.Equal(t, domain.Money(4000), summary.Expense)
	assert.Equal(t, domain.Money(6000), summary.Net)
	assert.Equal(t, 2, summary.EntryCount)
}

func TestStore_NextInvoiceSequence(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for want := int64(1); want <= 3; want++ {
		got, err := s.NextInvoiceSequence(ctx, "GS", "2503")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	other, err := s.NextInvoiceSequence(ctx, "GB", "2503")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
	next, err := s.NextInvoiceSequence(ctx, "GS", "2504")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestStore_Customers(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := domain.Customer{CustomerID: uuid.NewString(), Name: "Asha"}

	require.NoError(t, s.SaveCustomer(ctx, c))
	assert.ErrorIs(t, s.SaveCustomer(ctx, c), apperrors.ErrDuplicate)

	got, err := s.FindCustomerByID(ctx, c.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)

	_, err = s.FindCustomerByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
