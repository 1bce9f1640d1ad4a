package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDailyReport_ParsesDateInBusinessZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	cfg := testConfig()
	cfg.BusinessLocation = ist
	h := newHarness(cfg)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, ist)
	h.reports.On("DailyReport", mock.Anything, domain.Gold, mock.MatchedBy(func(d time.Time) bool { return d.Equal(day) })).
		Return(&domain.DailyReport{Metal: domain.Gold, Date: day, Net: 150000}, nil).Once()

	w := h.do(t, http.MethodGet, "/api/gold/reports/daily-analytics?date=2025-03-10", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "2025-03-10", body["date"])
	assert.Equal(t, "1500", body["net"])
	h.reports.AssertExpectations(t)
}

func TestDailyReport_InvalidDate(t *testing.T) {
	h := newHarness(testConfig())

	w := h.do(t, http.MethodGet, "/api/gold/reports/daily-analytics?date=10-03-2025", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date")
	h.reports.AssertNotCalled(t, "DailyReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestWeeklyReport_DefaultsToToday(t *testing.T) {
	h := newHarness(testConfig())
	h.reports.On("WeeklyReport", mock.Anything, domain.Silver, mock.AnythingOfType("time.Time")).
		Return(&domain.WeeklyReport{Metal: domain.Silver, Days: make([]domain.DayTotals, 7)}, nil).Once()

	w := h.do(t, http.MethodGet, "/api/silver/reports/weekly-analytics", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	days, ok := decodeBody(t, w)["days"].([]any)
	assert.True(t, ok)
	assert.Len(t, days, 7)
	h.reports.AssertExpectations(t)
}

func TestMonthlyReport(t *testing.T) {
	h := newHarness(testConfig())
	h.reports.On("MonthlyReport", mock.Anything, domain.Gold, 2025, time.March).
		Return(&domain.MonthlyReport{Metal: domain.Gold, Year: 2025, Month: time.March}, nil).Once()
	h.reports.On("MonthlyReport", mock.Anything, domain.Gold, 2025, time.Month(13)).
		Return(nil, apperrors.NewValidationError("month", "must be between 1 and 12")).Once()

	ok := h.do(t, http.MethodGet, "/api/gold/reports/analytics?year=2025&month=3", nil, nil)
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.EqualValues(t, 3, decodeBody(t, ok)["month"])

	bad := h.do(t, http.MethodGet, "/api/gold/reports/analytics?year=2025&month=13", nil, nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	notNumber := h.do(t, http.MethodGet, "/api/gold/reports/analytics?year=twenty", nil, nil)
	assert.Equal(t, http.StatusBadRequest, notNumber.Code)
	h.reports.AssertExpectations(t)
}

func TestProfitLoss_InclusiveEndDate(t *testing.T) {
	h := newHarness(testConfig())
	h.reports.On("ProfitLossReport", mock.Anything, domain.Gold,
		mock.MatchedBy(func(start *time.Time) bool {
			return start != nil && start.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(end *time.Time) bool {
			return end != nil && end.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
		}),
	).Return(&domain.ProfitLossReport{Metal: domain.Gold, ByCustomer: []domain.CustomerPnL{{Name: domain.WalkInCustomer, Count: 1}}}, nil).Once()

	w := h.do(t, http.MethodGet, "/api/gold/reports/profit-loss?startDate=2025-03-01&endDate=2025-03-31", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), domain.WalkInCustomer)
	h.reports.AssertExpectations(t)
}

func TestProfitLoss_OpenRange(t *testing.T) {
	h := newHarness(testConfig())
	h.reports.On("ProfitLossReport", mock.Anything, domain.Gold, (*time.Time)(nil), (*time.Time)(nil)).
		Return(&domain.ProfitLossReport{Metal: domain.Gold}, nil).Once()

	w := h.do(t, http.MethodGet, "/api/gold/reports/profit-loss", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	h.reports.AssertExpectations(t)
}
