package dto

import (
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TypeTotalsResponse is TypeTotals in rupees.
type TypeTotalsResponse struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalWeight domain.Grams    `json:"totalWeight"`
}

func toTypeTotals(t domain.TypeTotals) TypeTotalsResponse {
	return TypeTotalsResponse{Count: t.Count, TotalAmount: t.TotalAmount.Major(), TotalWeight: t.TotalWeight}
}

// PurityStatsResponse is PurityStats in rupees.
type PurityStatsResponse struct {
	Purity      domain.Purity   `json:"purity"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalWeight domain.Grams    `json:"totalWeight"`
	AverageRate decimal.Decimal `json:"averageRate"`
}

// TypeBreakdownResponse is a direction's totals split by purity.
type TypeBreakdownResponse struct {
	TransactionType domain.TransactionType `json:"transactionType"`
	TypeTotalsResponse
	ByPurity []PurityStatsResponse `json:"byPurity"`
}

func toTypeBreakdown(b domain.TypeBreakdown) TypeBreakdownResponse {
	stats := make([]PurityStatsResponse, len(b.ByPurity))
	for i, s := range b.ByPurity {
		stats[i] = PurityStatsResponse{
			Purity:      s.Purity,
			Count:       s.Count,
			TotalAmount: s.TotalAmount.Major(),
			TotalWeight: s.TotalWeight,
			AverageRate: s.AverageRate.Major(),
		}
	}
	return TypeBreakdownResponse{TransactionType: b.TransactionType, TypeTotalsResponse: toTypeTotals(b.TypeTotals), ByPurity: stats}
}

// DailyReportResponse is the daily analytics payload.
type DailyReportResponse struct {
	Metal domain.Metal          `json:"metal"`
	Date  string                `json:"date"`
	Buy   TypeBreakdownResponse `json:"buy"`
	Sell  TypeBreakdownResponse `json:"sell"`
	Net   decimal.Decimal       `json:"net"`
}

// ToDailyReportResponse converts a daily report.
func ToDailyReportResponse(r domain.DailyReport) DailyReportResponse {
	return DailyReportResponse{
		Metal: r.Metal,
		Date:  r.Date.Format(time.DateOnly),
		Buy:   toTypeBreakdown(r.Buy),
		Sell:  toTypeBreakdown(r.Sell),
		Net:   r.Net.Major(),
	}
}

// DayTotalsResponse is one day of the weekly report.
type DayTotalsResponse struct {
	Date    string             `json:"date"`
	Weekday string             `json:"weekday"`
	Buy     TypeTotalsResponse `json:"buy"`
	Sell    TypeTotalsResponse `json:"sell"`
	Net     decimal.Decimal    `json:"net"`
}

// WeeklyReportResponse is the weekly analytics payload.
type WeeklyReportResponse struct {
	Metal     domain.Metal        `json:"metal"`
	WeekStart string              `json:"weekStart"`
	WeekEnd   string              `json:"weekEnd"`
	Days      []DayTotalsResponse `json:"days"`
	Buy       TypeTotalsResponse  `json:"buy"`
	Sell      TypeTotalsResponse  `json:"sell"`
	Net       decimal.Decimal     `json:"net"`
}

// ToWeeklyReportResponse converts a weekly report.
func ToWeeklyReportResponse(r domain.WeeklyReport) WeeklyReportResponse {
	days := make([]DayTotalsResponse, len(r.Days))
	for i, d := range r.Days {
		days[i] = DayTotalsResponse{
			Date:    d.Date.Format(time.DateOnly),
			Weekday: d.Weekday,
			Buy:     toTypeTotals(d.Buy),
			Sell:    toTypeTotals(d.Sell),
			Net:     d.Net.Major(),
		}
	}
	return WeeklyReportResponse{
		Metal:     r.Metal,
		WeekStart: r.WeekStart.Format(time.DateOnly),
		WeekEnd:   r.WeekEnd.Format(time.DateOnly),
		Days:      days,
		Buy:       toTypeTotals(r.Buy),
		Sell:      toTypeTotals(r.Sell),
		Net:       r.Net.Major(),
	}
}

// DayAmountResponse is one day inside a monthly group.
type DayAmountResponse struct {
	Day         int             `json:"day"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalWeight domain.Grams    `json:"totalWeight"`
}

// MonthlyGroupResponse is one (type, purity) group.
type MonthlyGroupResponse struct {
	TransactionType domain.TransactionType `json:"transactionType"`
	Purity          domain.Purity          `json:"purity"`
	Count           int                    `json:"count"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	TotalWeight     domain.Grams           `json:"totalWeight"`
	AverageRate     decimal.Decimal        `json:"averageRate"`
	Days            []DayAmountResponse    `json:"days"`
}

// MonthlyReportResponse is the monthly analytics payload.
type MonthlyReportResponse struct {
	Metal  domain.Metal           `json:"metal"`
	Year   int                    `json:"year"`
	Month  int                    `json:"month"`
	Groups []MonthlyGroupResponse `json:"groups"`
	Buy    TypeTotalsResponse     `json:"buy"`
	Sell   TypeTotalsResponse     `json:"sell"`
	Net    decimal.Decimal        `json:"net"`
}

// ToMonthlyReportResponse converts a monthly report.
func ToMonthlyReportResponse(r domain.MonthlyReport) MonthlyReportResponse {
	groups := make([]MonthlyGroupResponse, len(r.Groups))
	for i, g := range r.Groups {
		days := make([]DayAmountResponse, len(g.Days))
		for j, d := range g.Days {
			days[j] = DayAmountResponse{Day: d.Day, Count: d.Count, TotalAmount: d.TotalAmount.Major(), TotalWeight: d.TotalWeight}
		}
		groups[i] = MonthlyGroupResponse{
			TransactionType: g.TransactionType,
			Purity:          g.Purity,
			Count:           g.Count,
			TotalAmount:     g.TotalAmount.Major(),
			TotalWeight:     g.TotalWeight,
			AverageRate:     g.AverageRate.Major(),
			Days:            days,
		}
	}
	return MonthlyReportResponse{
		Metal:  r.Metal,
		Year:   r.Year,
		Month:  int(r.Month),
		Groups: groups,
		Buy:    toTypeTotals(r.Buy),
		Sell:   toTypeTotals(r.Sell),
		Net:    r.Net.Major(),
	}
}

// CustomerPnLResponse is one customer row of the profit/loss report.
type CustomerPnLResponse struct {
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	BuyAmount  decimal.Decimal `json:"buyAmount"`
	SellAmount decimal.Decimal `json:"sellAmount"`
	Net        decimal.Decimal `json:"net"`
}

// PurityPnLResponse is one purity row of the profit/loss report.
type PurityPnLResponse struct {
	Purity      domain.Purity   `json:"purity"`
	BuyAmount   decimal.Decimal `json:"buyAmount"`
	SellAmount  decimal.Decimal `json:"sellAmount"`
	BuyWeight   domain.Grams    `json:"buyWeight"`
	SellWeight  domain.Grams    `json:"sellWeight"`
	AvgBuyRate  decimal.Decimal `json:"avgBuyRate"`
	AvgSellRate decimal.Decimal `json:"avgSellRate"`
	RateSpread  decimal.Decimal `json:"rateSpread"`
	Net         decimal.Decimal `json:"net"`
}

// ProfitLossReportResponse is the profit/loss payload.
type ProfitLossReportResponse struct {
	Metal      domain.Metal          `json:"metal"`
	StartDate  *time.Time            `json:"startDate,omitempty"`
	EndDate    *time.Time            `json:"endDate,omitempty"`
	Buy        TypeTotalsResponse    `json:"buy"`
	Sell       TypeTotalsResponse    `json:"sell"`
	Net        decimal.Decimal       `json:"net"`
	ByCustomer []CustomerPnLResponse `json:"byCustomer"`
	ByPurity   []PurityPnLResponse   `json:"byPurity"`
}

// ToProfitLossReportResponse converts a profit/loss report.
func ToProfitLossReportResponse(r domain.ProfitLossReport) ProfitLossReportResponse {
	customers := make([]CustomerPnLResponse, len(r.ByCustomer))
	for i, c := range r.ByCustomer {
		customers[i] = CustomerPnLResponse{
			Name:       c.Name,
			Count:      c.Count,
			BuyAmount:  c.BuyAmount.Major(),
			SellAmount: c.SellAmount.Major(),
			Net:        c.Net.Major(),
		}
	}
	purities := make([]PurityPnLResponse, len(r.ByPurity))
	for i, p := range r.ByPurity {
		purities[i] = PurityPnLResponse{
			Purity:      p.Purity,
			BuyAmount:   p.BuyAmount.Major(),
			SellAmount:  p.SellAmount.Major(),
			BuyWeight:   p.BuyWeight,
			SellWeight:  p.SellWeight,
			AvgBuyRate:  p.AvgBuyRate.Major(),
			AvgSellRate: p.AvgSellRate.Major(),
			RateSpread:  p.RateSpread.Major(),
			Net:         p.Net.Major(),
		}
	}
	return ProfitLossReportResponse{
		Metal:      r.Metal,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Buy:        toTypeTotals(r.Buy),
		Sell:       toTypeTotals(r.Sell),
		Net:        r.Net.Major(),
		ByCustomer: customers,
		ByPurity:   purities,
	}
}

// ReconciliationResponse reports what a reconciliation run repaired.
type ReconciliationResponse struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Examined int `json:"examined"`
}
