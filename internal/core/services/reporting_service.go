package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/analytics"
)

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	serviceOptions
	txnRepo portsrepo.MetalTransactionReader
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.MetalTransactionReader, opts ...Option) portssvc.ReportingSvc {
	return &reportingService{
		serviceOptions: newServiceOptions(opts),
		txnRepo:        repo,
	}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// load fetches every transaction of the metal created in [start, end).
func (s *reportingService) load(ctx context.Context, metal domain.Metal, start, end *time.Time) ([]domain.MetalTransaction, error) {
	txns, _, err := s.txnRepo.ListMetalTransactions(ctx, domain.MetalTransactionFilter{
		Metal:     metal,
		StartDate: start,
		EndDate:   end,
		SortBy:    domain.SortByCreatedAt,
		SortOrder: domain.SortAsc,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for report", slog.String("metal", string(metal)))
		return nil, fmt.Errorf("failed to load transactions for report: %w", err)
	}
	return txns, nil
}

// DailyReport generates the by-type, by-purity rollup of one business day
func (s *reportingService) DailyReport(ctx context.Context, metal domain.Metal, day time.Time) (*domain.DailyReport, error) {
	if _, err := profileOrValidation(metal); err != nil {
		return nil, err
	}
	start, end := analytics.DayBounds(day, s.loc)
	txns, err := s.load(ctx, metal, &start, &end)
	if err != nil {
		return nil, err
	}
	report := analytics.Daily(metal, day, s.loc, txns)
	return &report, nil
}

// WeeklyReport generates the per-weekday rollup of the week containing day
func (s *reportingService) WeeklyReport(ctx context.Context, metal domain.Metal, day time.Time) (*domain.WeeklyReport, error) {
	if _, err := profileOrValidation(metal); err != nil {
		return nil, err
	}
	start, end := analytics.WeekBounds(day, s.loc)
	txns, err := s.load(ctx, metal, &start, &end)
	if err != nil {
		return nil, err
	}
	report := analytics.Weekly(metal, day, s.loc, txns)
	return &report, nil
}

// MonthlyReport generates the (type, purity) groups with daily breakdown for one month
func (s *reportingService) MonthlyReport(ctx context.Context, metal domain.Metal, year int, month time.Month) (*domain.MonthlyReport, error) {
	if _, err := profileOrValidation(metal); err != nil {
		return nil, err
	}
	if month < time.January || month > time.December {
		return nil, apperrors.NewValidationError("month", "must be between 1 and 12")
	}
	if year < 1 {
		return nil, apperrors.NewValidationError("year", "must be positive")
	}
	start, end := analytics.MonthBounds(year, month, s.loc)
	txns, err := s.load(ctx, metal, &start, &end)
	if err != nil {
		return nil, err
	}
	report := analytics.Monthly(metal, year, month, s.loc, txns)
	return &report, nil
}

// ProfitLossReport generates totals by type, customer and purity over an optional range
func (s *reportingService) ProfitLossReport(ctx context.Context, metal domain.Metal, start, end *time.Time) (*domain.ProfitLossReport, error) {
	if _, err := profileOrValidation(metal); err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, apperrors.NewValidationError("endDate", "must not be before startDate")
	}
	txns, err := s.load(ctx, metal, start, end)
	if err != nil {
		return nil, err
	}
	report := analytics.ProfitLoss(metal, start, end, txns)
	return &report, nil
}
