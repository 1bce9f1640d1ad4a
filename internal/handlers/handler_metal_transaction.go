package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/SscSPs/jewel_backoffice_app/internal/middleware"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// metalTransactionHandler serves the transaction routes of one metal.
type metalTransactionHandler struct {
	metal         domain.Metal
	service       portssvc.MetalTransactionSvcFacade
	posthogClient *utils.PosthogClientWrapper
	loc           *time.Location
}

func newMetalTransactionHandler(metal domain.Metal, svc portssvc.MetalTransactionSvcFacade, posthogClient *utils.PosthogClientWrapper, loc *time.Location) *metalTransactionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &metalTransactionHandler{metal: metal, service: svc, posthogClient: posthogClient, loc: loc}
}

// registerMetalTransactionRoutes mounts the CRUD, history and ledger-sync routes on a metal's group.
func registerMetalTransactionRoutes(rg *gin.RouterGroup, metal domain.Metal, svc portssvc.MetalTransactionSvcFacade, posthogClient *utils.PosthogClientWrapper, loc *time.Location) {
	h := newMetalTransactionHandler(metal, svc, posthogClient, loc)

	rg.POST("", h.createTransaction)
	rg.GET("", h.listTransactions)
	rg.GET("/:id", h.getTransaction)
	rg.PUT("/:id", h.updateTransaction)
	rg.DELETE("/:id", h.deleteTransaction)
	rg.POST("/:id/ledger/sync", h.syncLedgerEntry)
	rg.GET("/customers/:customerId/transactions", h.getCustomerHistory)
}

func (h *metalTransactionHandler) logger(c *gin.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("metal", string(h.metal)))
}

// createTransaction godoc
// @Summary Record a metal transaction
// @Description Prices every item server-side, assigns an invoice number and mirrors the total into the ledger.
// @Tags transactions
// @Accept json
// @Produce json
// @Param metal path string true "gold or silver"
// @Param transaction body dto.CreateMetalTransactionRequest true "Transaction details"
// @Success 201 {object} dto.MetalTransactionResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Invoice number conflict"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /{metal} [post]
func (h *metalTransactionHandler) createTransaction(c *gin.Context) {
	logger := h.logger(c)

	var req dto.CreateMetalTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID := middleware.ActorID(c)
	txn, err := h.service.CreateTransaction(c.Request.Context(), h.metal, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "metal_transaction_created", map[string]any{
		"metal":            string(h.metal),
		"transaction_type": string(txn.TransactionType),
		"item_count":       len(txn.Items),
		"payment_status":   string(txn.PaymentStatus),
	})
	c.JSON(http.StatusCreated, dto.ToMetalTransactionResponse(*txn))
}

// listTransactions godoc
// @Summary List metal transactions
// @Description Returns a filtered, sorted page of transactions. Dates are business-calendar days and endDate is inclusive.
// @Tags transactions
// @Produce json
// @Param metal path string true "gold or silver"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param transactionType query string false "BUY or SELL"
// @Param customer query string false "Customer ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param purity query string false "Purity carried by any item"
// @Param paymentStatus query string false "PENDING, PARTIAL or PAID"
// @Param sortBy query string false "createdAt, totalAmount, invoiceNumber or totalWeight"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} dto.ListMetalTransactionsResponse
// @Failure 400 {object} map[string]interface{} "Invalid query"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /{metal} [get]
func (h *metalTransactionHandler) listTransactions(c *gin.Context) {
	logger := h.logger(c)

	var errs apperrors.ValidationErrors
	page := pageParams(c, &errs)
	start, end := dayRange(c, h.loc, &errs)
	if err := errs.OrNil(); err != nil {
		respondError(c, logger, err, "Invalid list query")
		return
	}

	filter := domain.MetalTransactionFilter{
		Metal:      h.metal,
		CustomerID: optionalQuery(c, "customer"),
		StartDate:  start,
		EndDate:    end,
		SortBy:     c.Query("sortBy"),
		SortOrder:  domain.SortOrder(c.Query("sortOrder")),
		Limit:      page.Limit,
		Offset:     page.Offset(),
	}
	if v := optionalQuery(c, "transactionType"); v != nil {
		t := domain.TransactionType(*v)
		filter.TransactionType = &t
	}
	if v := optionalQuery(c, "purity"); v != nil {
		p := domain.Purity(*v)
		filter.Purity = &p
	}
	if v := optionalQuery(c, "paymentStatus"); v != nil {
		s := domain.PaymentStatus(*v)
		filter.PaymentStatus = &s
	}

	txns, total, err := h.service.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListMetalTransactionsResponse{
		Transactions: dto.ToMetalTransactionResponses(txns),
		Pagination:   pagination.NewMeta(page, total),
	})
}

// getTransaction godoc
// @Summary Get a metal transaction
// @Tags transactions
// @Produce json
// @Param metal path string true "gold or silver"
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.MetalTransactionResponse
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /{metal}/{id} [get]
func (h *metalTransactionHandler) getTransaction(c *gin.Context) {
	logger := h.logger(c)
	txnID := c.Param("id")

	txn, err := h.service.GetTransaction(c.Request.Context(), h.metal, txnID)
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", txnID)), err, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToMetalTransactionResponse(*txn))
}

// updateTransaction godoc
// @Summary Update a metal transaction
// @Description Applies mutable changes, recomputes totals and re-syncs the ledger mirror. Type and counterparty cannot change.
// @Tags transactions
// @Accept json
// @Produce json
// @Param metal path string true "gold or silver"
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateMetalTransactionRequest true "Fields to change"
// @Success 200 {object} dto.MetalTransactionResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /{metal}/{id} [put]
func (h *metalTransactionHandler) updateTransaction(c *gin.Context) {
	logger := h.logger(c)
	txnID := c.Param("id")

	var req dto.UpdateMetalTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	txn, err := h.service.UpdateTransaction(c.Request.Context(), h.metal, txnID, req, middleware.ActorID(c))
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", txnID)), err, "Failed to update transaction")
		return
	}

	logger.Info("Metal transaction updated", slog.String("transaction_id", txnID))
	c.JSON(http.StatusOK, dto.ToMetalTransactionResponse(*txn))
}

// deleteTransaction godoc
// @Summary Delete a metal transaction
// @Description Removes the transaction and its ledger mirror together.
// @Tags transactions
// @Param metal path string true "gold or silver"
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /{metal}/{id} [delete]
func (h *metalTransactionHandler) deleteTransaction(c *gin.Context) {
	logger := h.logger(c)
	txnID := c.Param("id")

	if err := h.service.DeleteTransaction(c.Request.Context(), h.metal, txnID, middleware.ActorID(c)); err != nil {
		respondError(c, logger.With(slog.String("transaction_id", txnID)), err, "Failed to delete transaction")
		return
	}

	logger.Info("Metal transaction deleted", slog.String("transaction_id", txnID))
	c.Status(http.StatusNoContent)
}

// syncLedgerEntry godoc
// @Summary Repair a transaction's ledger entry
// @Description Creates the ledger mirror if it is missing or corrects its amount.
// @Tags ledger
// @Produce json
// @Param metal path string true "gold or silver"
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /{metal}/{id}/ledger/sync [post]
func (h *metalTransactionHandler) syncLedgerEntry(c *gin.Context) {
	logger := h.logger(c)
	txnID := c.Param("id")

	entry, err := h.service.SyncLedgerEntry(c.Request.Context(), h.metal, txnID, middleware.ActorID(c))
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", txnID)), err, "Failed to sync ledger entry")
		return
	}

	logger.Info("Ledger entry synced", slog.String("transaction_id", txnID), slog.String("ledger_entry_id", entry.LedgerEntryID))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(*entry))
}

// getCustomerHistory godoc
// @Summary Customer transaction history
// @Description Returns a page of one customer's transactions with lifetime totals.
// @Tags transactions
// @Produce json
// @Param metal path string true "gold or silver"
// @Param customerId path string true "Customer ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.CustomerHistoryResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /{metal}/customers/{customerId}/transactions [get]
func (h *metalTransactionHandler) getCustomerHistory(c *gin.Context) {
	logger := h.logger(c)
	customerID := c.Param("customerId")

	var errs apperrors.ValidationErrors
	page := pageParams(c, &errs)
	if err := errs.OrNil(); err != nil {
		respondError(c, logger, err, "Invalid pagination")
		return
	}

	history, err := h.service.GetCustomerHistory(c.Request.Context(), h.metal, customerID, page)
	if err != nil {
		respondError(c, logger.With(slog.String("customer_id", customerID)), err, "Failed to get customer history")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerHistoryResponse(*history, page))
}
