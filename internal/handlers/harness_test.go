package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// harness wires every route against fresh service mocks.
type harness struct {
	router    *gin.Engine
	txns      *MockMetalTransactionService
	reports   *MockReportingService
	ledger    *MockLedgerService
	customers *MockCustomerService
	rates     *MockMarketRateService
}

func newHarness(cfg *config.Config) *harness {
	h := &harness{
		txns:      new(MockMetalTransactionService),
		reports:   new(MockReportingService),
		ledger:    new(MockLedgerService),
		customers: new(MockCustomerService),
		rates:     new(MockMarketRateService),
	}
	h.router = newTestRouter(cfg, &portssvc.ServiceContainer{
		MetalTransaction: h.txns,
		Reporting:        h.reports,
		Ledger:           h.ledger,
		Customer:         h.customers,
		MarketRates:      h.rates,
	})
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}
