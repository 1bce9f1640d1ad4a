package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Postgres and in-memory storage both build one.
type RepositoryProvider struct {
	MetalTransactionRepo MetalTransactionRepositoryFacade
	LedgerRepo           LedgerRepositoryFacade
	CustomerRepo         CustomerRepositoryFacade
	InvoiceSequenceRepo  InvoiceSequenceRepository
}
