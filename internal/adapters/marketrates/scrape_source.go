package marketrates

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
)

// ScrapeSource reads a rate table from an HTML page. Each row matched by the
// selector is expected to hold three cells: metal, purity and rupees per gram.
// Rows that do not parse, such as headers, are skipped.
type ScrapeSource struct {
	client   *http.Client
	url      string
	selector string
	now      func() time.Time
}

// NewScrapeSource creates a source scraping url. An empty selector means "table tr".
func NewScrapeSource(client *http.Client, url, selector string) *ScrapeSource {
	if selector == "" {
		selector = "table tr"
	}
	return &ScrapeSource{client: client, url: url, selector: selector, now: time.Now}
}

var _ portssvc.MarketRateSource = (*ScrapeSource)(nil)

func (s *ScrapeSource) Name() string { return "scrape" }

func (s *ScrapeSource) FetchRates(ctx context.Context) (*domain.MarketRates, error) {
	req, err := newRequest(ctx, s.url, "text/html")
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate page returned status %d", resp.StatusCode)
	}

	document, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing rate page: %w", err)
	}

	rates := &domain.MarketRates{}
	document.Find(s.selector).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		metal, err := domain.ParseMetal(cells.Eq(0).Text())
		if err != nil {
			return
		}
		purity := domain.Purity(strings.ToUpper(strings.TrimSpace(cells.Eq(1).Text())))
		rupees, err := parseRupees(cells.Eq(2).Text())
		if err != nil {
			return
		}
		setRate(rates, metal, purity, rupees)
	})

	if len(rates.Rates) == 0 {
		return nil, fmt.Errorf("no rates matched %q on %s", s.selector, s.url)
	}
	stamp(rates, s.Name(), s.now())
	return rates, nil
}
