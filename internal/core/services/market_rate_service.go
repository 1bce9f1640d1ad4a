package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/cache"
	"golang.org/x/sync/singleflight"
)

const currentRatesKey = "current"

// DefaultMarketRatesTTL is how long fetched rates are served from cache.
const DefaultMarketRatesTTL = 10 * time.Minute

// DefaultMarketRatesFetchTimeout bounds a shared upstream fetch.
const DefaultMarketRatesFetchTimeout = 5 * time.Second

type marketRateService struct {
	BaseService
	source portssvc.MarketRateSource
	cache  *cache.TTLCache[string, *domain.MarketRates]
	group  singleflight.Group
	now    func() time.Time

	fetchTimeout time.Duration
}

// NewMarketRateService wraps source with a TTL cache. A nil source yields a
// service whose every call reports ErrUnavailable.
func NewMarketRateService(source portssvc.MarketRateSource, ttl time.Duration, opts ...Option) (portssvc.MarketRateSvc, error) {
	o := newServiceOptions(opts)
	if ttl <= 0 {
		ttl = DefaultMarketRatesTTL
	}
	c, err := cache.NewTTLCache[string, *domain.MarketRates](8, ttl, cache.WithClock(o.now))
	if err != nil {
		return nil, fmt.Errorf("failed to create market rate cache: %w", err)
	}
	return &marketRateService{source: source, cache: c, now: o.now, fetchTimeout: o.fetchTimeout}, nil
}

var _ portssvc.MarketRateSvc = (*marketRateService)(nil)

func (s *marketRateService) CurrentRates(ctx context.Context) (*domain.MarketRates, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no market rate source configured: %w", apperrors.ErrUnavailable)
	}
	if rates, ok := s.cache.Get(currentRatesKey); ok {
		return rates, nil
	}
	// Concurrent misses share one upstream call, which must outlive the request that started it.
	v, err, _ := s.group.Do(currentRatesKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return s.Refresh(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.MarketRates), nil
}

func (s *marketRateService) Refresh(ctx context.Context) (*domain.MarketRates, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no market rate source configured: %w", apperrors.ErrUnavailable)
	}
	rates, err := s.source.FetchRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch market rates", slog.String("source", s.source.Name()))
		return nil, fmt.Errorf("failed to fetch market rates from %s: %w", s.source.Name(), errors.Join(apperrors.ErrUnavailable, err))
	}
	if rates == nil || len(rates.Rates) == 0 {
		return nil, fmt.Errorf("market rate source %s returned no rates: %w", s.source.Name(), apperrors.ErrUnavailable)
	}
	rates.FillDerivedRates()
	if rates.Source == "" {
		rates.Source = s.source.Name()
	}
	if rates.FetchedAt.IsZero() {
		rates.FetchedAt = s.now()
	}
	s.cache.Set(currentRatesKey, rates)
	s.LogDebug(ctx, "Market rates refreshed", slog.String("source", rates.Source))
	return rates, nil
}
