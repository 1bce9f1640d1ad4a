package services

import (
	"context"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
)

// MarketRateSource is an external provider of current metal prices.
type MarketRateSource interface {
	Name() string
	FetchRates(ctx context.Context) (*domain.MarketRates, error)
}

// MarketRateSvc serves current rates through a cache.
type MarketRateSvc interface {
	// CurrentRates returns cached rates or fetches fresh ones. Errors wrap apperrors.ErrUnavailable.
	CurrentRates(ctx context.Context) (*domain.MarketRates, error)

	// Refresh bypasses the cache and stores the fetched rates.
	Refresh(ctx context.Context) (*domain.MarketRates, error)
}
