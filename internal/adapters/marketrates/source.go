// Package marketrates holds the outbound market price sources.
package marketrates

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/platform/config"
	"github.com/shopspring/decimal"
)

const userAgent = "jewel-backoffice/1.0"

// NewSource builds the source selected by MARKET_RATES_PROVIDER. It returns
// nil, nil when no provider is configured.
func NewSource(cfg *config.Config) (portssvc.MarketRateSource, error) {
	client := &http.Client{Timeout: cfg.MarketRatesTimeout}
	switch cfg.MarketRatesProvider {
	case config.RatesProviderNone, "":
		return nil, nil
	case config.RatesProviderHTTP:
		if cfg.MarketRatesGoldURL == "" && cfg.MarketRatesSilverURL == "" {
			return nil, fmt.Errorf("market rates provider %q needs MARKET_RATES_GOLD_URL or MARKET_RATES_SILVER_URL", cfg.MarketRatesProvider)
		}
		urls := map[domain.Metal]string{}
		if cfg.MarketRatesGoldURL != "" {
			urls[domain.Gold] = cfg.MarketRatesGoldURL
		}
		if cfg.MarketRatesSilverURL != "" {
			urls[domain.Silver] = cfg.MarketRatesSilverURL
		}
		return NewHTTPSource(client, urls), nil
	case config.RatesProviderScrape:
		if cfg.MarketRatesScrapeURL == "" {
			return nil, fmt.Errorf("market rates provider %q needs MARKET_RATES_SCRAPE_URL", cfg.MarketRatesProvider)
		}
		return NewScrapeSource(client, cfg.MarketRatesScrapeURL, cfg.MarketRatesScrapeSelector), nil
	default:
		return nil, fmt.Errorf("unknown market rates provider %q", cfg.MarketRatesProvider)
	}
}

// parseRupees accepts "₹7,250.50", "7250.5 /g" and similar quote strings.
func parseRupees(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", "INR", "", ",", "", "/gm", "", "/g", "").Replace(raw)
	return decimal.NewFromString(strings.TrimSpace(cleaned))
}

// setRate stores a rupee quote in paise, ignoring purities the metal does not have.
func setRate(rates *domain.MarketRates, metal domain.Metal, purity domain.Purity, rupees decimal.Decimal) bool {
	profile, err := domain.ProfileFor(metal)
	if err != nil || !profile.SupportsPurity(purity) || !rupees.IsPositive() {
		return false
	}
	if rates.Rates == nil {
		rates.Rates = map[domain.Metal]map[domain.Purity]domain.Money{}
	}
	if rates.Rates[metal] == nil {
		rates.Rates[metal] = map[domain.Purity]domain.Money{}
	}
	rates.Rates[metal][purity] = domain.MoneyFromMajor(rupees)
	return true
}

func newRequest(ctx context.Context, url string, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	return req, nil
}

func stamp(rates *domain.MarketRates, source string, now time.Time) {
	if rates.Source == "" {
		rates.Source = source
	}
	if rates.FetchedAt.IsZero() {
		rates.FetchedAt = now
	}
}
