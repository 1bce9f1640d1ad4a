package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/SscSPs/jewel_backoffice_app/internal/handlers"
	"github.com/SscSPs/jewel_backoffice_app/internal/middleware"
	"github.com/SscSPs/jewel_backoffice_app/internal/platform/config"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type MetalTransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockTxns    *MockMetalTransactionService
	mockReports *MockReportingService
	mockLedger  *MockLedgerService
	mockCust    *MockCustomerService
	mockRates   *MockMarketRateService
}

func newTestRouter(cfg *config.Config, container *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, cfg, container, nil, nil)
	return r
}

func testConfig() *config.Config {
	return &config.Config{
		IsProduction:       true,
		BusinessLocation:   time.UTC,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		JWTSecret:          "test-secret-key-that-is-long-enough",
		JWTIssuer:          "jbo-test",
	}
}

func (suite *MetalTransactionHandlerTestSuite) SetupTest() {
	suite.mockTxns = new(MockMetalTransactionService)
	suite.mockReports = new(MockReportingService)
	suite.mockLedger = new(MockLedgerService)
	suite.mockCust = new(MockCustomerService)
	suite.mockRates = new(MockMarketRateService)

	suite.router = newTestRouter(testConfig(), &portssvc.ServiceContainer{
		MetalTransaction: suite.mockTxns,
		Reporting:        suite.mockReports,
		Ledger:           suite.mockLedger,
		Customer:         suite.mockCust,
		MarketRates:      suite.mockRates,
	})
}

func (suite *MetalTransactionHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON object: %s", w.Body.String())
	}
	return body
}

func sampleTransaction() *domain.MetalTransaction {
	ledgerID := uuid.NewString()
	at := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	return &domain.MetalTransaction{
		TransactionID:   uuid.NewString(),
		Metal:           domain.Gold,
		TransactionType: domain.Sell,
		Items: []domain.LineItem{{
			ItemName:       "Necklace",
			Purity:         "22K",
			Weight:         domain.MustGrams("10"),
			RatePerGram:    600000,
			MakingCharges:  50000,
			WastagePercent: decimal.NewFromInt(2),
			Total:          6170000,
		}},
		TotalWeight:   domain.MustGrams("10"),
		Subtotal:      6170000,
		Total:         6170000,
		AdvancePaid:   2000000,
		Remaining:     4170000,
		PaymentStatus: domain.PaymentPartial,
		PaymentMode:   domain.PaymentCash,
		InvoiceNumber: "GS250300001",
		LedgerEntryID: &ledgerID,
		AuditFields:   domain.AuditFields{CreatedAt: at, CreatedBy: middleware.AnonymousUserID, LastUpdatedAt: at, LastUpdatedBy: middleware.AnonymousUserID},
	}
}

func necklaceBody() map[string]any {
	return map[string]any{
		"transactionType": "SELL",
		"items": []map[string]any{{
			"itemName":       "Necklace",
			"purity":         "22K",
			"weight":         "10",
			"ratePerGram":    "6000",
			"makingCharges":  "500",
			"wastagePercent": "2",
		}},
		"advanceAmount": "20000",
		"total":         "1",
	}
}

// --- Test Cases ---

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_Success() {
	txn := sampleTransaction()
	suite.mockTxns.On("CreateTransaction", mock.Anything, domain.Gold, mock.MatchedBy(func(req dto.CreateMetalTransactionRequest) bool {
		return req.TransactionType == domain.Sell &&
			len(req.Items) == 1 &&
			req.Items[0].Weight.Equal(decimal.NewFromInt(10)) &&
			req.AdvanceAmount.Equal(decimal.NewFromInt(20000))
	}), middleware.AnonymousUserID).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/gold", necklaceBody())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(suite.T(), w)
	suite.Equal("GS250300001", body["invoiceNumber"])
	suite.Equal("61700", body["totalAmount"])
	suite.Equal("41700", body["remainingAmount"])
	suite.Equal(domain.WalkInCustomer, body["customerName"])
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_SilverRoute() {
	txn := sampleTransaction()
	txn.Metal = domain.Silver
	suite.mockTxns.On("CreateTransaction", mock.Anything, domain.Silver, mock.Anything, middleware.AnonymousUserID).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/silver", necklaceBody())

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_MissingItems() {
	body := necklaceBody()
	delete(body, "items")

	w := suite.do(http.MethodPost, "/api/gold", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := decodeBody(suite.T(), w)
	suite.Contains(fmt.Sprint(resp["details"]), "items")
	suite.mockTxns.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_InvalidItemAmounts() {
	body := necklaceBody()
	body["items"] = []map[string]any{{
		"itemName":       "Ring",
		"purity":         "22K",
		"weight":         "0",
		"ratePerGram":    "-1",
		"wastagePercent": "150",
	}}

	w := suite.do(http.MethodPost, "/api/gold", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	details := fmt.Sprint(decodeBody(suite.T(), w)["details"])
	suite.Contains(details, "items[0].weight")
	suite.Contains(details, "items[0].ratePerGram")
	suite.Contains(details, "items[0].wastagePercent")
	suite.mockTxns.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_MissingRatePerGram() {
	body := necklaceBody()
	body["items"] = []map[string]any{{"itemName": "Bar", "purity": "24K", "weight": "1"}}

	w := suite.do(http.MethodPost, "/api/gold", body)

	suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	suite.Contains(fmt.Sprint(decodeBody(suite.T(), w)["details"]), "items[0].ratePerGram")
	suite.mockTxns.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_ZeroRatePerGram() {
	body := necklaceBody()
	body["items"] = []map[string]any{{"itemName": "Bar", "purity": "24K", "weight": "1", "ratePerGram": "0"}}
	suite.mockTxns.On("CreateTransaction", mock.Anything, domain.Gold, mock.MatchedBy(func(req dto.CreateMetalTransactionRequest) bool {
		return req.Items[0].RatePerGram != nil && req.Items[0].RatePerGram.IsZero()
	}), middleware.AnonymousUserID).Return(sampleTransaction(), nil).Once()

	w := suite.do(http.MethodPost, "/api/gold", body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_LogsOnlyInService() {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(previous)
	suite.mockTxns.On("CreateTransaction", mock.Anything, domain.Gold, mock.Anything, middleware.AnonymousUserID).Return(sampleTransaction(), nil).Once()

	w := suite.do(http.MethodPost, "/api/gold", necklaceBody())

	suite.Equal(http.StatusCreated, w.Code)
	suite.NotContains(logs.String(), "Metal transaction created")
}

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_MalformedJSON() {
	req, _ := http.NewRequest(http.MethodPost, "/api/gold", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MetalTransactionHandlerTestSuite) TestCreateTransaction_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown customer", fmt.Errorf("customer c1: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"service validation", apperrors.NewValidationError("items[0].purity", "must be one of 24K, 22K"), http.StatusBadRequest},
		{"invoice conflict", apperrors.NewAppError(http.StatusConflict, "Could not allocate a unique invoice number", apperrors.ErrConflict), http.StatusConflict},
		{"storage failure", fmt.Errorf("failed to save: %w", assert.AnError), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockTxns.On("CreateTransaction", mock.Anything, domain.Gold, mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/gold", necklaceBody())

			suite.Equal(tc.status, w.Code)
			if tc.status == http.StatusInternalServerError {
				suite.NotContains(w.Body.String(), assert.AnError.Error())
			}
		})
	}
}

func (suite *MetalTransactionHandlerTestSuite) TestListTransactions_BuildsFilter() {
	txn := sampleTransaction()
	suite.mockTxns.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f domain.MetalTransactionFilter) bool {
		return f.Metal == domain.Gold &&
			f.Limit == 10 && f.Offset == 10 &&
			f.TransactionType != nil && *f.TransactionType == domain.Sell &&
			f.Purity != nil && *f.Purity == "22K" &&
			f.StartDate != nil && f.StartDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.EndDate != nil && f.EndDate.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) &&
			f.SortBy == domain.SortByTotalAmount && f.SortOrder == domain.SortAsc
	})).Return([]domain.MetalTransaction{*txn}, 11, nil).Once()

	w := suite.do(http.MethodGet, "/api/gold?page=2&limit=10&transactionType=SELL&purity=22K&startDate=2025-03-01&endDate=2025-03-31&sortBy=totalAmount&sortOrder=asc", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListMetalTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Equal(pagination.Meta{Page: 2, Limit: 10, Total: 11, TotalPages: 2}, resp.Pagination)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *MetalTransactionHandlerTestSuite) TestListTransactions_InvalidQuery() {
	w := suite.do(http.MethodGet, "/api/gold?page=0&limit=500&startDate=03/01/2025", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	details, ok := decodeBody(suite.T(), w)["details"].([]any)
	suite.Require().True(ok)
	suite.Len(details, 3)
	suite.mockTxns.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *MetalTransactionHandlerTestSuite) TestGetTransaction() {
	txn := sampleTransaction()
	suite.mockTxns.On("GetTransaction", mock.Anything, domain.Gold, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxns.On("GetTransaction", mock.Anything, domain.Gold, "missing").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxns.On("GetTransaction", mock.Anything, domain.Gold, "bad").Return(nil, apperrors.NewValidationError("transactionId", "must be a valid UUID")).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/gold/"+txn.TransactionID, nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/gold/missing", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/gold/bad", nil).Code)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *MetalTransactionHandlerTestSuite) TestUpdateTransaction() {
	txn := sampleTransaction()
	suite.mockTxns.On("UpdateTransaction", mock.Anything, domain.Gold, txn.TransactionID, mock.MatchedBy(func(req dto.UpdateMetalTransactionRequest) bool {
		return req.AdvanceAmount != nil && req.AdvanceAmount.Equal(decimal.NewFromInt(61700)) && req.Items == nil
	}), middleware.AnonymousUserID).Return(txn, nil).Once()

	w := suite.do(http.MethodPut, "/api/gold/"+txn.TransactionID, map[string]any{"advanceAmount": "61700"})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *MetalTransactionHandlerTestSuite) TestUpdateTransaction_NegativeAdvance() {
	w := suite.do(http.MethodPut, "/api/gold/"+uuid.NewString(), map[string]any{"advanceAmount": "-5"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "advanceAmount")
}

func (suite *MetalTransactionHandlerTestSuite) TestDeleteTransaction() {
	id := uuid.NewString()
	suite.mockTxns.On("DeleteTransaction", mock.Anything, domain.Gold, id, middleware.AnonymousUserID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/gold/"+id, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *MetalTransactionHandlerTestSuite) TestSyncLedgerEntry() {
	txn := sampleTransaction()
	entry := domain.NewMirrorLedgerEntry(*txn.LedgerEntryID, *txn)
	suite.mockTxns.On("SyncLedgerEntry", mock.Anything, domain.Gold, txn.TransactionID, middleware.AnonymousUserID).Return(&entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/gold/"+txn.TransactionID+"/ledger/sync", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal(*txn.LedgerEntryID, body["ledgerEntryId"])
	suite.Equal("GOLD_SELL", body["entryType"])
	suite.Equal("61700", body["amount"])
}

func (suite *MetalTransactionHandlerTestSuite) TestCustomerHistory() {
	customerID := uuid.NewString()
	txn := sampleTransaction()
	history := &domain.CustomerHistory{
		Customer:     domain.Customer{CustomerID: customerID, Name: "Asha Rao"},
		Transactions: []domain.MetalTransaction{*txn},
		Total:        1,
		Stats:        domain.CustomerStats{TransactionCount: 1, TotalSold: txn.Total, NetAmount: txn.Total, TotalWeight: txn.TotalWeight},
	}
	suite.mockTxns.On("GetCustomerHistory", mock.Anything, domain.Gold, customerID, pagination.Params{Page: 1, Limit: 5}).Return(history, nil).Once()

	w := suite.do(http.MethodGet, "/api/gold/customers/"+customerID+"/transactions?limit=5", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.CustomerHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Asha Rao", resp.Customer.Name)
	suite.Equal(1, resp.Stats.TransactionCount)
	suite.True(resp.Stats.TotalSold.Equal(decimal.NewFromInt(61700)))
	suite.Equal(1, resp.Pagination.TotalPages)
}

func (suite *MetalTransactionHandlerTestSuite) TestUnknownMetalIsNotRouted() {
	w := suite.do(http.MethodGet, "/api/platinum", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *MetalTransactionHandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestMetalTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MetalTransactionHandlerTestSuite))
}
