package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	clock   time.Time
	ist     *time.Location
	txns    portssvc.MetalTransactionSvcFacade
	service portssvc.ReportingSvc
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ist = time.FixedZone("IST", 5*3600+1800)
	repos := memory.NewRepositoryProvider(memory.NewStore())
	opts := []services.Option{
		services.WithClock(func() time.Time { return suite.clock }),
		services.WithLocation(suite.ist),
	}
	suite.txns = services.NewMetalTransactionService(repos, nil, 3, opts...)
	suite.service = services.NewReportingService(repos.MetalTransactionRepo, opts...)
}

func (suite *ReportingServiceTestSuite) createAt(at time.Time, t domain.TransactionType) {
	suite.clock = at
	req := necklaceSale()
	req.TransactionType = t
	_, err := suite.txns.CreateTransaction(context.Background(), domain.Gold, req, "clerk")
	suite.Require().NoError(err)
}

func (suite *ReportingServiceTestSuite) TestDailyReport_UsesBusinessDay() {
	// 20:00 UTC on the 9th is already the 10th in IST.
	suite.createAt(time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC), domain.Sell)
	suite.createAt(time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), domain.Buy)
	suite.createAt(time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC), domain.Sell)

	report, err := suite.service.DailyReport(context.Background(), domain.Gold, time.Date(2025, 3, 10, 12, 0, 0, 0, suite.ist))

	suite.Require().NoError(err)
	suite.Equal(1, report.Sell.Count)
	suite.Equal(1, report.Buy.Count)
	suite.Zero(report.Net)
}

func (suite *ReportingServiceTestSuite) TestWeeklyReport_SevenDays() {
	suite.createAt(time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), domain.Sell)
	suite.createAt(time.Date(2025, 3, 16, 6, 0, 0, 0, time.UTC), domain.Sell)
	suite.createAt(time.Date(2025, 3, 17, 6, 0, 0, 0, time.UTC), domain.Sell)

	report, err := suite.service.WeeklyReport(context.Background(), domain.Gold, time.Date(2025, 3, 12, 12, 0, 0, 0, suite.ist))

	suite.Require().NoError(err)
	suite.Len(report.Days, 7)
	suite.Equal(2, report.Sell.Count)
	suite.Equal(time.Monday, report.WeekStart.Weekday())
}

func (suite *ReportingServiceTestSuite) TestMonthlyReport_Validates() {
	_, err := suite.service.MonthlyReport(context.Background(), domain.Gold, 2025, 13)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.MonthlyReport(context.Background(), domain.Metal("PLATINUM"), 2025, 3)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestMonthlyReport_GroupsByTypeAndPurity() {
	suite.createAt(time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC), domain.Sell)
	suite.createAt(time.Date(2025, 3, 4, 6, 0, 0, 0, time.UTC), domain.Sell)
	suite.createAt(time.Date(2025, 4, 1, 6, 0, 0, 0, time.UTC), domain.Sell)

	report, err := suite.service.MonthlyReport(context.Background(), domain.Gold, 2025, time.March)

	suite.Require().NoError(err)
	suite.Require().Len(report.Groups, 1)
	suite.Equal(2, report.Groups[0].Count)
	suite.Len(report.Groups[0].Days, 2)
}

func (suite *ReportingServiceTestSuite) TestProfitLoss_RangeAndValidation() {
	suite.createAt(time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC), domain.Sell)
	suite.createAt(time.Date(2025, 3, 4, 6, 0, 0, 0, time.UTC), domain.Buy)

	report, err := suite.service.ProfitLossReport(context.Background(), domain.Gold, nil, nil)
	suite.Require().NoError(err)
	suite.Equal(1, report.Sell.Count)
	suite.Equal(1, report.Buy.Count)
	suite.Require().Len(report.ByCustomer, 1)
	suite.Equal(domain.WalkInCustomer, report.ByCustomer[0].Name)

	start := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = suite.service.ProfitLossReport(context.Background(), domain.Gold, &start, &end)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
