package domain

import "time"

// TypeTotals aggregates transactions of one direction.
type TypeTotals struct {
	Count       int   `json:"count"`
	TotalAmount Money `json:"totalAmount"`
	TotalWeight Grams `json:"totalWeight"`
}

// PurityStats aggregates the items of one purity. Count is an item count.
type PurityStats struct {
	Purity      Purity `json:"purity"`
	Count       int    `json:"count"`
	TotalAmount Money  `json:"totalAmount"`
	TotalWeight Grams  `json:"totalWeight"`
	AverageRate Money  `json:"averageRate"`
}

// TypeBreakdown is a direction's totals split by purity.
type TypeBreakdown struct {
	TransactionType TransactionType `json:"transactionType"`
	TypeTotals
	ByPurity []PurityStats `json:"byPurity"`
}

// DailyReport summarises one business day.
type DailyReport struct {
	Metal Metal         `json:"metal"`
	Date  time.Time     `json:"date"`
	Buy   TypeBreakdown `json:"buy"`
	Sell  TypeBreakdown `json:"sell"`
	Net   Money         `json:"net"`
}

// DayTotals is one weekday inside a weekly report.
type DayTotals struct {
	Date    time.Time  `json:"date"`
	Weekday string     `json:"weekday"`
	Buy     TypeTotals `json:"buy"`
	Sell    TypeTotals `json:"sell"`
	Net     Money      `json:"net"`
}

// WeeklyReport covers Monday through Sunday.
type WeeklyReport struct {
	Metal     Metal       `json:"metal"`
	WeekStart time.Time   `json:"weekStart"`
	WeekEnd   time.Time   `json:"weekEnd"`
	Days      []DayTotals `json:"days"`
	Buy       TypeTotals  `json:"buy"`
	Sell      TypeTotals  `json:"sell"`
	Net       Money       `json:"net"`
}

// DayAmount is one calendar day inside a monthly group.
type DayAmount struct {
	Day         int   `json:"day"`
	Count       int   `json:"count"`
	TotalAmount Money `json:"totalAmount"`
	TotalWeight Grams `json:"totalWeight"`
}

// MonthlyGroup is one (type, purity) pair with a day-by-day breakdown.
type MonthlyGroup struct {
	TransactionType TransactionType `json:"transactionType"`
	Purity          Purity          `json:"purity"`
	Count           int             `json:"count"`
	TotalAmount     Money           `json:"totalAmount"`
	TotalWeight     Grams           `json:"totalWeight"`
	AverageRate     Money           `json:"averageRate"`
	Days            []DayAmount     `json:"days"`
}

// MonthlyReport covers one calendar month.
type MonthlyReport struct {
	Metal  Metal          `json:"metal"`
	Year   int            `json:"year"`
	Month  time.Month     `json:"month"`
	Groups []MonthlyGroup `json:"groups"`
	Buy    TypeTotals     `json:"buy"`
	Sell   TypeTotals     `json:"sell"`
	Net    Money          `json:"net"`
}

// CustomerPnL is the net position with one counterparty.
type CustomerPnL struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	BuyAmount  Money  `json:"buyAmount"`
	SellAmount Money  `json:"sellAmount"`
	Net        Money  `json:"net"`
}

// PurityPnL compares buying and selling for one purity.
type PurityPnL struct {
	Purity      Purity `json:"purity"`
	BuyAmount   Money  `json:"buyAmount"`
	SellAmount  Money  `json:"sellAmount"`
	BuyWeight   Grams  `json:"buyWeight"`
	SellWeight  Grams  `json:"sellWeight"`
	AvgBuyRate  Money  `json:"avgBuyRate"`
	AvgSellRate Money  `json:"avgSellRate"`
	RateSpread  Money  `json:"rateSpread"`
	Net         Money  `json:"net"`
}

// ProfitLossReport is a range report. Nil bounds mean open-ended.
type ProfitLossReport struct {
	Metal      Metal         `json:"metal"`
	StartDate  *time.Time    `json:"startDate,omitempty"`
	EndDate    *time.Time    `json:"endDate,omitempty"`
	Buy        TypeTotals    `json:"buy"`
	Sell       TypeTotals    `json:"sell"`
	Net        Money         `json:"net"`
	ByCustomer []CustomerPnL `json:"byCustomer"`
	ByPurity   []PurityPnL   `json:"byPurity"`
}

// CustomerStats aggregates one customer's history.
type CustomerStats struct {
	TransactionCount  int        `json:"transactionCount"`
	TotalBought       Money      `json:"totalBought"`
	TotalSold         Money      `json:"totalSold"`
	TotalWeight       Grams      `json:"totalWeight"`
	NetAmount         Money      `json:"netAmount"`
	LastTransactionAt *time.Time `json:"lastTransactionAt,omitempty"`
}
