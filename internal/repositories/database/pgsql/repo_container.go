package pgsql

import (
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MetalTransactionRepo: newPgxMetalTransactionRepository(dbPool),
		LedgerRepo:           newPgxLedgerRepository(dbPool),
		CustomerRepo:         newPgxCustomerRepository(dbPool),
		InvoiceSequenceRepo:  newPgxInvoiceSequenceRepository(dbPool),
	}
}
