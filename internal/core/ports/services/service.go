package services

// ServiceContainer holds instances of all the application services.
// Handlers and background jobs get their dependencies from here.
type ServiceContainer struct {
	MetalTransaction MetalTransactionSvcFacade
	Reporting        ReportingSvc
	Ledger           LedgerSvcFacade
	Customer         CustomerSvcFacade
	MarketRates      MarketRateSvc
}
