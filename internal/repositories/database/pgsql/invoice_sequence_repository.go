package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceSequenceRepository struct {
	BaseRepository
}

func newPgxInvoiceSequenceRepository(pool *pgxpool.Pool) portsrepo.InvoiceSequenceRepository {
	return &PgxInvoiceSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceSequenceRepository = (*PgxInvoiceSequenceRepository)(nil)

// NextInvoiceSequence increments the (prefix, period) counter in a single statement;
// the row lock taken by the upsert serialises concurrent callers.
func (r *PgxInvoiceSequenceRepository) NextInvoiceSequence(ctx context.Context, prefix, period string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (prefix, period, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, period) DO UPDATE SET last_seq = invoice_sequences.last_seq + 1
		RETURNING last_seq;
	`
	var seq int64
	if err := r.Pool.QueryRow(ctx, query, prefix, period).Scan(&seq); err != nil {
		return 0, mapWriteError(err, "failed to allocate invoice sequence for "+prefix+period)
	}
	return seq, nil
}
