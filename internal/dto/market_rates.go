package dto

import (
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MarketRatesResponse is the current rate table in rupees per gram.
type MarketRatesResponse struct {
	Gold      map[domain.Purity]decimal.Decimal `json:"gold"`
	Silver    map[domain.Purity]decimal.Decimal `json:"silver"`
	Source    string                            `json:"source"`
	FetchedAt time.Time                         `json:"fetchedAt"`
}

// ToMarketRatesResponse converts market rates.
func ToMarketRatesResponse(r domain.MarketRates) MarketRatesResponse {
	return MarketRatesResponse{
		Gold:      MajorRates(r.Rates[domain.Gold]),
		Silver:    MajorRates(r.Rates[domain.Silver]),
		Source:    r.Source,
		FetchedAt: r.FetchedAt,
	}
}
