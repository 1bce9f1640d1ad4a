package services_test

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// --- Mock MetalTransactionRepository ---
type MockMetalTransactionRepository struct {
	mock.Mock
}

func (m *MockMetalTransactionRepository) FindMetalTransactionByID(ctx context.Context, metal domain.Metal, transactionID string) (*domain.MetalTransaction, error) {
	args := m.Called(ctx, metal, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetalTransaction), args.Error(1)
}

func (m *MockMetalTransactionRepository) ListMetalTransactions(ctx context.Context, filter domain.MetalTransactionFilter) ([]domain.MetalTransaction, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MetalTransaction), args.Int(1), args.Error(2)
}

func (m *MockMetalTransactionRepository) FindUnreconciledMetalTransactions(ctx context.Context, limit int) ([]domain.MetalTransaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MetalTransaction), args.Error(1)
}

func (m *MockMetalTransactionRepository) SaveMetalTransaction(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) error {
	args := m.Called(ctx, txn, entry)
	return args.Error(0)
}

func (m *MockMetalTransactionRepository) UpdateMetalTransaction(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) (string, error) {
	args := m.Called(ctx, txn, entry)
	return args.String(0), args.Error(1)
}

func (m *MockMetalTransactionRepository) DeleteMetalTransaction(ctx context.Context, metal domain.Metal, transactionID string) error {
	args := m.Called(ctx, metal, transactionID)
	return args.Error(0)
}

func (m *MockMetalTransactionRepository) SyncLedgerEntry(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) (string, error) {
	args := m.Called(ctx, txn, entry)
	return args.String(0), args.Error(1)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// --- Mock MarketRateSvc ---
type MockMarketRateSvc struct {
	mock.Mock
}

func (m *MockMarketRateSvc) CurrentRates(ctx context.Context) (*domain.MarketRates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketRates), args.Error(1)
}

func (m *MockMarketRateSvc) Refresh(ctx context.Context) (*domain.MarketRates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketRates), args.Error(1)
}

// fakeRateSource counts upstream calls.
type fakeRateSource struct {
	calls atomic.Int32
	rates func() *domain.MarketRates
	err   error
	delay time.Duration
}

func (f *fakeRateSource) Name() string { return "fake" }

func (f *fakeRateSource) FetchRates(ctx context.Context) (*domain.MarketRates, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.rates(), nil
}

func goldReferenceRates() *domain.MarketRates {
	return &domain.MarketRates{
		Rates: map[domain.Metal]map[domain.Purity]domain.Money{
			domain.Gold:   {"24K": 725050},
			domain.Silver: {"999": 9200},
		},
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// necklaceSale totals 61700.00: 10g at 6000 with 2% wastage and 500 making.
func necklaceSale() dto.CreateMetalTransactionRequest {
	return dto.CreateMetalTransactionRequest{
		TransactionType: domain.Sell,
		Items: []dto.LineItemRequest{{
			ItemName:       "Necklace",
			Purity:         "22K",
			Weight:         dec("10"),
			RatePerGram:    decPtr("6000"),
			MakingCharges:  dec("500"),
			WastagePercent: dec("2"),
		}},
		AdvanceAmount: dec("20000"),
	}
}
