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

// reportingHandler handles the analytics routes of one metal.
type reportingHandler struct {
	metal            domain.Metal
	reportingService portssvc.ReportingSvc
	loc              *time.Location
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(metal domain.Metal, rs portssvc.ReportingSvc, loc *time.Location) *reportingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &reportingHandler{metal: metal, reportingService: rs, loc: loc, now: time.Now}
}

// registerReportingRoutes registers the report routes under a metal's group.
func registerReportingRoutes(rg *gin.RouterGroup, metal domain.Metal, reportingService portssvc.ReportingSvc, loc *time.Location) {
	h := newReportingHandler(metal, reportingService, loc)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/daily-analytics", h.getDailyReport)
		reportingGroup.GET("/weekly-analytics", h.getWeeklyReport)
		reportingGroup.GET("/analytics", h.getMonthlyReport)
		reportingGroup.GET("/profit-loss", h.getProfitLoss)
	}
}

func (h *reportingHandler) today() time.Time {
	return h.now().In(h.loc)
}

// dayOrToday reads the date query value, defaulting to the current business day.
func (h *reportingHandler) dayOrToday(c *gin.Context) (time.Time, error) {
	day, err := parseDay(c.Query("date"), h.loc)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date", "must be a date in YYYY-MM-DD format")
	}
	if day == nil {
		return h.today(), nil
	}
	return *day, nil
}

// getDailyReport godoc
// @Summary Daily analytics
// @Description Buy and sell totals for one business day, split by purity.
// @Tags reports
// @Produce json
// @Param metal path string true "gold or silver"
// @Param date query string false "Report day (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.DailyReportResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /{metal}/reports/daily-analytics [get]
func (h *reportingHandler) getDailyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	day, err := h.dayOrToday(c)
	if err != nil {
		respondError(c, logger, err, "Invalid report date")
		return
	}

	logger = logger.With(slog.String("metal", string(h.metal)), slog.String("date", day.Format(time.DateOnly)))
	report, err := h.reportingService.DailyReport(c.Request.Context(), h.metal, day)
	if err != nil {
		respondError(c, logger, err, "Failed to generate daily report")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyReportResponse(*report))
}

// getWeeklyReport godoc
// @Summary Weekly analytics
// @Description Seven daily totals for the Monday-start week containing the date.
// @Tags reports
// @Produce json
// @Param metal path string true "gold or silver"
// @Param date query string false "Any day in the week (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.WeeklyReportResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /{metal}/reports/weekly-analytics [get]
func (h *reportingHandler) getWeeklyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	day, err := h.dayOrToday(c)
	if err != nil {
		respondError(c, logger, err, "Invalid report date")
		return
	}

	logger = logger.With(slog.String("metal", string(h.metal)), slog.String("date", day.Format(time.DateOnly)))
	report, err := h.reportingService.WeeklyReport(c.Request.Context(), h.metal, day)
	if err != nil {
		respondError(c, logger, err, "Failed to generate weekly report")
		return
	}
	c.JSON(http.StatusOK, dto.ToWeeklyReportResponse(*report))
}

// getMonthlyReport godoc
// @Summary Monthly analytics
// @Description Totals grouped by transaction type and purity with per-day amounts.
// @Tags reports
// @Produce json
// @Param metal path string true "gold or silver"
// @Param year query int false "Year" default(current year)
// @Param month query int false "Month 1-12" default(current month)
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /{metal}/reports/analytics [get]
func (h *reportingHandler) getMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	today := h.today()

	var errs apperrors.ValidationErrors
	year := optionalInt(c, "year", today.Year(), &errs)
	month := optionalInt(c, "month", int(today.Month()), &errs)
	if err := errs.OrNil(); err != nil {
		respondError(c, logger, err, "Invalid report period")
		return
	}

	logger = logger.With(slog.String("metal", string(h.metal)), slog.Int("year", year), slog.Int("month", month))
	report, err := h.reportingService.MonthlyReport(c.Request.Context(), h.metal, year, time.Month(month))
	if err != nil {
		respondError(c, logger, err, "Failed to generate monthly report")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(*report))
}

// getProfitLoss godoc
// @Summary Profit and loss
// @Description Buy against sell totals with per-customer and per-purity breakdowns. Both bounds are optional and endDate is inclusive.
// @Tags reports
// @Produce json
// @Param metal path string true "gold or silver"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ProfitLossReportResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /{metal}/reports/profit-loss [get]
func (h *reportingHandler) getProfitLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var errs apperrors.ValidationErrors
	start, end := dayRange(c, h.loc, &errs)
	if err := errs.OrNil(); err != nil {
		respondError(c, logger, err, "Invalid report range")
		return
	}

	logger = logger.With(slog.String("metal", string(h.metal)))
	report, err := h.reportingService.ProfitLossReport(c.Request.Context(), h.metal, start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitLossReportResponse(*report))
}
