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
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	loc           *time.Location
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, loc *time.Location) *ledgerHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ledgerHandler{ledgerService: ls, loc: loc}
}

// registerLedgerRoutes registers the cash-flow ledger routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, loc *time.Location) {
	h := newLedgerHandler(ls, loc)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.listEntries)
		ledger.GET("/summary", h.getSummary)
		ledger.POST("/reconcile", h.reconcile)
	}
}

// listEntries godoc
// @Summary List ledger entries
// @Description Cash-flow records mirrored from metal transactions, newest first.
// @Tags ledger
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param category query string false "INCOME or EXPENSE"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} map[string]interface{} "Invalid query"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var errs apperrors.ValidationErrors
	page := pageParams(c, &errs)
	start, end := dayRange(c, h.loc, &errs)
	if err := errs.OrNil(); err != nil {
		respondError(c, logger, err, "Invalid ledger query")
		return
	}

	filter := domain.LedgerFilter{StartDate: start, EndDate: end, Limit: page.Limit, Offset: page.Offset()}
	if v := optionalQuery(c, "category"); v != nil {
		category := domain.LedgerCategory(*v)
		filter.Category = &category
	}

	entries, total, err := h.ledgerService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntriesResponse(entries, page, total))
}

// getSummary godoc
// @Summary Ledger summary
// @Description Income, expense and net (income minus expense) over an optional date range.
// @Tags ledger
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.LedgerSummaryResponse
// @Failure 400 {object} map[string]interface{} "Invalid query"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /ledger/summary [get]
func (h *ledgerHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var errs apperrors.ValidationErrors
	start, end := dayRange(c, h.loc, &errs)
	if err := errs.OrNil(); err != nil {
		respondError(c, logger, err, "Invalid ledger summary range")
		return
	}

	summary, err := h.ledgerService.Summary(c.Request.Context(), domain.LedgerFilter{StartDate: start, EndDate: end})
	if err != nil {
		respondError(c, logger, err, "Failed to summarize ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(*summary))
}

// reconcile godoc
// @Summary Reconcile the ledger
// @Description Creates missing mirrors, fixes amount drift and deletes entries whose transaction no longer exists.
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /ledger/reconcile [post]
func (h *ledgerHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.ledgerService.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Ledger reconciliation failed")
		return
	}

	logger.Info("Ledger reconciled",
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("deleted", result.Deleted),
		slog.Int("examined", result.Examined))
	c.JSON(http.StatusOK, dto.ReconciliationResponse{
		Created:  result.Created,
		Updated:  result.Updated,
		Deleted:  result.Deleted,
		Examined: result.Examined,
	})
}
