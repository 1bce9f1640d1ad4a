package services

import (
	"context"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
)

// ReportingSvc defines the read-only rollups over stored transactions.
type ReportingSvc interface {
	// DailyReport covers the business day containing day.
	DailyReport(ctx context.Context, metal domain.Metal, day time.Time) (*domain.DailyReport, error)

	// WeeklyReport covers the Monday-start week containing day.
	WeeklyReport(ctx context.Context, metal domain.Metal, day time.Time) (*domain.WeeklyReport, error)

	// MonthlyReport covers one calendar month.
	MonthlyReport(ctx context.Context, metal domain.Metal, year int, month time.Month) (*domain.MonthlyReport, error)

	// ProfitLossReport covers [start, end); either bound may be nil.
	ProfitLossReport(ctx context.Context, metal domain.Metal, start, end *time.Time) (*domain.ProfitLossReport, error)
}
