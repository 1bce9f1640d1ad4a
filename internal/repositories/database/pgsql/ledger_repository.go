package pgsql

import (
	"context"
	"net/http"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/jewel_backoffice_app/internal/models"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerEntryColumns = `
	l.ledger_entry_id, l.entry_type, l.direction, l.amount, l.category, l.related_doc_id, l.metal, l.description, l.entry_date,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.LedgerEntryID,
		&m.EntryType,
		&m.Direction,
		&m.Amount,
		&m.Category,
		&m.RelatedDocID,
		&m.Metal,
		&m.Description,
		&m.EntryDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxLedgerRepository) findOne(ctx context.Context, condition string, arg string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries l WHERE ` + condition + ` = $1;`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapReadError(err, "failed to find ledger entry by "+condition)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindLedgerEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindLedgerEntryByID(ctx context.Context, ledgerEntryID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, "l.ledger_entry_id", ledgerEntryID)
}

// FindLedgerEntryByRelatedDoc retrieves the entry mirroring a transaction.
func (r *PgxLedgerRepository) FindLedgerEntryByRelatedDoc(ctx context.Context, relatedDocID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, "l.related_doc_id", relatedDocID)
}

func buildLedgerWhere(filter domain.LedgerFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Category != nil {
		w.add("l.category = ?", string(*filter.Category))
	}
	if filter.StartDate != nil {
		w.add("l.entry_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		w.add("l.entry_date < ?", *filter.EndDate)
	}
	return w
}

// ListLedgerEntries returns one page of entries, newest first, and the total match count.
func (r *PgxLedgerRepository) ListLedgerEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, int, error) {
	w := buildLedgerWhere(filter)
	where := w.String()

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries l`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to count ledger entries", err)
	}

	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries l` + where + ` ORDER BY l.entry_date DESC, l.ledger_entry_id DESC`
	if filter.Limit > 0 {
		query += " LIMIT " + w.next(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + w.next(filter.Offset)
	}

	entries, err := r.queryLedgerEntries(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// SummarizeLedger totals income and expense over the filter window.
func (r *PgxLedgerRepository) SummarizeLedger(ctx context.Context, filter domain.LedgerFilter) (domain.LedgerSummary, error) {
	w := buildLedgerWhere(filter)
	query := `
		SELECT
			COALESCE(SUM(l.amount) FILTER (WHERE l.category = 'INCOME'), 0),
			COALESCE(SUM(l.amount) FILTER (WHERE l.category = 'EXPENSE'), 0),
			COUNT(*)
		FROM ledger_entries l` + w.String()

	var income, expense int64
	var count int
	if err := r.Pool.QueryRow(ctx, query, w.args...).Scan(&income, &expense, &count); err != nil {
		return domain.LedgerSummary{}, apperrors.NewAppError(http.StatusInternalServerError, "failed to summarize ledger", err)
	}
	return domain.LedgerSummary{
		Income:     domain.Money(income),
		Expense:    domain.Money(expense),
		Net:        domain.Money(income - expense),
		EntryCount: count,
	}, nil
}

// FindOrphanLedgerEntries returns entries whose related transaction no longer exists.
func (r *PgxLedgerRepository) FindOrphanLedgerEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries l
		WHERE NOT EXISTS (SELECT 1 FROM metal_transactions t WHERE t.transaction_id = l.related_doc_id)
		ORDER BY l.entry_date
		LIMIT $1;
	`
	return r.queryLedgerEntries(ctx, query, limit)
}

// DeleteLedgerEntry removes one entry.
func (r *PgxLedgerRepository) DeleteLedgerEntry(ctx context.Context, ledgerEntryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE ledger_entry_id = $1;`, ledgerEntryID)
	if err != nil {
		return mapWriteError(err, "failed to delete ledger entry "+ledgerEntryID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) queryLedgerEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan ledger entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}
