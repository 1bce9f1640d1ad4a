package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
)

// --- Mock MetalTransactionService ---
type MockMetalTransactionService struct {
	mock.Mock
}

func (m *MockMetalTransactionService) CreateTransaction(ctx context.Context, metal domain.Metal, req dto.CreateMetalTransactionRequest, userID string) (*domain.MetalTransaction, error) {
	args := m.Called(ctx, metal, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetalTransaction), args.Error(1)
}

func (m *MockMetalTransactionService) UpdateTransaction(ctx context.Context, metal domain.Metal, transactionID string, req dto.UpdateMetalTransactionRequest, userID string) (*domain.MetalTransaction, error) {
	args := m.Called(ctx, metal, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetalTransaction), args.Error(1)
}

func (m *MockMetalTransactionService) DeleteTransaction(ctx context.Context, metal domain.Metal, transactionID string, userID string) error {
	args := m.Called(ctx, metal, transactionID, userID)
	return args.Error(0)
}

func (m *MockMetalTransactionService) SyncLedgerEntry(ctx context.Context, metal domain.Metal, transactionID string, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, metal, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockMetalTransactionService) GetTransaction(ctx context.Context, metal domain.Metal, transactionID string) (*domain.MetalTransaction, error) {
	args := m.Called(ctx, metal, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetalTransaction), args.Error(1)
}

func (m *MockMetalTransactionService) ListTransactions(ctx context.Context, filter domain.MetalTransactionFilter) ([]domain.MetalTransaction, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.MetalTransaction), args.Int(1), args.Error(2)
}

func (m *MockMetalTransactionService) GetCustomerHistory(ctx context.Context, metal domain.Metal, customerID string, page pagination.Params) (*domain.CustomerHistory, error) {
	args := m.Called(ctx, metal, customerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerHistory), args.Error(1)
}

var _ portssvc.MetalTransactionSvcFacade = (*MockMetalTransactionService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) DailyReport(ctx context.Context, metal domain.Metal, day time.Time) (*domain.DailyReport, error) {
	args := m.Called(ctx, metal, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyReport), args.Error(1)
}

func (m *MockReportingService) WeeklyReport(ctx context.Context, metal domain.Metal, day time.Time) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, metal, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *MockReportingService) MonthlyReport(ctx context.Context, metal domain.Metal, year int, month time.Month) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, metal, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

func (m *MockReportingService) ProfitLossReport(ctx context.Context, metal domain.Metal, start, end *time.Time) (*domain.ProfitLossReport, error) {
	args := m.Called(ctx, metal, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitLossReport), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Int(1), args.Error(2)
}

func (m *MockLedgerService) Summary(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockLedgerService) Reconcile(ctx context.Context) (*domain.ReconciliationResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationResult), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock MarketRateService ---
type MockMarketRateService struct {
	mock.Mock
}

func (m *MockMarketRateService) CurrentRates(ctx context.Context) (*domain.MarketRates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketRates), args.Error(1)
}

func (m *MockMarketRateService) Refresh(ctx context.Context) (*domain.MarketRates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketRates), args.Error(1)
}

var _ portssvc.MarketRateSvc = (*MockMarketRateService)(nil)
