package marketrates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// quoteResponse is the JSON served per metal, with rupee prices per gram:
//
//	{"source": "ibja", "rates": {"24K": "7250.50", "22K": 6646.29}}
type quoteResponse struct {
	Source string                     `json:"source"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// HTTPSource fetches one JSON quote per metal, all metals concurrently.
type HTTPSource struct {
	client *http.Client
	urls   map[domain.Metal]string
	now    func() time.Time
}

// NewHTTPSource creates a source reading each metal's quote from its URL.
func NewHTTPSource(client *http.Client, urls map[domain.Metal]string) *HTTPSource {
	return &HTTPSource{client: client, urls: urls, now: time.Now}
}

var _ portssvc.MarketRateSource = (*HTTPSource)(nil)

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) FetchRates(ctx context.Context) (*domain.MarketRates, error) {
	rates := &domain.MarketRates{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for metal, url := range s.urls {
		g.Go(func() error {
			quote, err := s.fetch(gctx, url)
			if err != nil {
				return fmt.Errorf("%s quote: %w", metal.Slug(), err)
			}
			mu.Lock()
			defer mu.Unlock()
			for purity, rupees := range quote.Rates {
				setRate(rates, metal, domain.Purity(purity), rupees)
			}
			if quote.Source != "" {
				rates.Source = quote.Source
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(rates.Rates) == 0 {
		return nil, fmt.Errorf("no usable quotes from %d endpoints", len(s.urls))
	}
	stamp(rates, s.Name(), s.now())
	return rates, nil
}

func (s *HTTPSource) fetch(ctx context.Context, url string) (*quoteResponse, error) {
	req, err := newRequest(ctx, url, "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("quote endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("error decoding quote from %s: %w", url, err)
	}
	return &quote, nil
}
