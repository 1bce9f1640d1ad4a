package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// generateTestToken creates a signed JWT for testing.
func generateTestToken(t *testing.T, secret, issuer, userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuth_RequiredWhenEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.RequireAuth = true
	h := newHarness(cfg)

	w := h.do(t, http.MethodGet, "/api/ledger/summary", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	wrongIssuer := generateTestToken(t, cfg.JWTSecret, "someone-else", "clerk-1")
	w = h.do(t, http.MethodGet, "/api/ledger/summary", nil, map[string]string{"Authorization": "Bearer " + wrongIssuer})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Health stays public.
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health", nil, nil).Code)
	h.ledger.AssertNotCalled(t, "Summary", mock.Anything, mock.Anything)
}

func TestAuth_TokenSubjectBecomesActor(t *testing.T) {
	cfg := testConfig()
	cfg.RequireAuth = true
	h := newHarness(cfg)
	token := generateTestToken(t, cfg.JWTSecret, cfg.JWTIssuer, "clerk-1")

	h.customers.On("CreateCustomer", mock.Anything, dto.CreateCustomerRequest{Name: "Asha"}, "clerk-1").
		Return(&domain.Customer{CustomerID: "c1", Name: "Asha", AuditFields: domain.AuditFields{CreatedBy: "clerk-1"}}, nil).Once()

	w := h.do(t, http.MethodPost, "/api/customers", map[string]any{"name": "Asha"}, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "clerk-1", decodeBody(t, w)["createdBy"])
	h.customers.AssertExpectations(t)
}

func TestCORS_PreflightFromDashboard(t *testing.T) {
	h := newHarness(testConfig())

	w := h.do(t, http.MethodOptions, "/api/gold", nil, map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
