package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// source may be nil when no market price provider is configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, source portssvc.MarketRateSource) (*portssvc.ServiceContainer, error) {
	opts := []Option{WithLocation(cfg.BusinessLocation)}

	rates, err := NewMarketRateService(source, cfg.MarketRatesCacheTTL, append(opts, WithFetchTimeout(cfg.MarketRatesTimeout))...)
	if err != nil {
		return nil, fmt.Errorf("failed to create market rate service: %w", err)
	}

	var snapshotRates portssvc.MarketRateSvc
	if source != nil {
		snapshotRates = rates
	}

	return &portssvc.ServiceContainer{
		MetalTransaction: NewMetalTransactionService(repos, snapshotRates, cfg.InvoiceRetryAttempts, opts...),
		Reporting:        NewReportingService(repos.MetalTransactionRepo, opts...),
		Ledger:           NewLedgerService(repos, opts...),
		Customer:         NewCustomerService(repos.CustomerRepo, opts...),
		MarketRates:      rates,
	}, nil
}
