package pgsql

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/jewel_backoffice_app/internal/models"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const metalTransactionColumns = `
	t.transaction_id, t.metal, t.transaction_type, t.counterparty_role, t.customer_id, t.counterparty_name, t.supplier,
	t.total_weight, t.subtotal, t.total, t.advance_paid, t.remaining, t.payment_status, t.payment_mode,
	t.invoice_number, t.bill_number, t.notes, t.market_rates, t.ledger_entry_id,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

// sortColumns whitelists ORDER BY targets; user input never reaches the SQL text.
var sortColumns = map[string]string{
	domain.SortByCreatedAt:     "t.created_at",
	domain.SortByTotalAmount:   "t.total",
	domain.SortByInvoiceNumber: "t.invoice_number",
	domain.SortByTotalWeight:   "t.total_weight",
}

type PgxMetalTransactionRepository struct {
	BaseRepository
}

func newPgxMetalTransactionRepository(pool *pgxpool.Pool) portsrepo.MetalTransactionRepositoryFacade {
	return &PgxMetalTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MetalTransactionRepositoryFacade = (*PgxMetalTransactionRepository)(nil)

func scanMetalTransaction(row pgx.Row) (models.MetalTransaction, error) {
	var m models.MetalTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.Metal,
		&m.TransactionType,
		&m.CounterpartyRole,
		&m.CustomerID,
		&m.CounterpartyName,
		&m.Supplier,
		&m.TotalWeight,
		&m.Subtotal,
		&m.Total,
		&m.AdvancePaid,
		&m.Remaining,
		&m.PaymentStatus,
		&m.PaymentMode,
		&m.InvoiceNumber,
		&m.BillNumber,
		&m.Notes,
		&m.MarketRates,
		&m.LedgerEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveMetalTransaction inserts the header, its items and the ledger mirror in one transaction.
func (r *PgxMetalTransactionRepository) SaveMetalTransaction(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) error {
	row, items := mapping.ToModelMetalTransaction(txn)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO metal_transactions (
				transaction_id, metal, transaction_type, counterparty_role, customer_id, counterparty_name, supplier,
				total_weight, subtotal, total, advance_paid, remaining, payment_status, payment_mode,
				invoice_number, bill_number, notes, market_rates, ledger_entry_id,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
		`
		_, err := tx.Exec(ctx, query,
			row.TransactionID,
			row.Metal,
			row.TransactionType,
			row.CounterpartyRole,
			row.CustomerID,
			row.CounterpartyName,
			row.Supplier,
			row.TotalWeight,
			row.Subtotal,
			row.Total,
			row.AdvancePaid,
			row.Remaining,
			row.PaymentStatus,
			row.PaymentMode,
			row.InvoiceNumber,
			row.BillNumber,
			row.Notes,
			row.MarketRates,
			row.LedgerEntryID,
			row.CreatedAt,
			row.CreatedBy,
			row.LastUpdatedAt,
			row.LastUpdatedBy,
		)
		if err != nil {
			return mapWriteError(err, "failed to insert metal transaction "+row.TransactionID)
		}
		if err := insertItems(ctx, tx, items); err != nil {
			return err
		}
		if _, err := upsertLedgerEntry(ctx, tx, entry); err != nil {
			return err
		}
		return nil
	})
}

func insertItems(ctx context.Context, tx pgx.Tx, items []models.MetalTransactionItem) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO metal_transaction_items (
			transaction_id, position, item_name, description, purity, weight, rate_per_gram,
			making_charges, wastage_percent, tax, total, photos, hallmark_number, certificate_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, it := range items {
		batch.Queue(query,
			it.TransactionID,
			it.Position,
			it.ItemName,
			it.Description,
			it.Purity,
			it.Weight,
			it.RatePerGram,
			it.MakingCharges,
			it.WastagePercent,
			it.Tax,
			it.Total,
			it.Photos,
			it.HallmarkNumber,
			it.CertificateNumber,
		)
	}
	// Close reports the first failing command of the batch.
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "failed to insert metal transaction items")
	}
	return nil
}

// upsertLedgerEntry keeps exactly one entry per related document and returns its id.
func upsertLedgerEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (string, error) {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (
			ledger_entry_id, entry_type, direction, amount, category, related_doc_id, metal, description, entry_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (related_doc_id) DO UPDATE SET
			entry_type = EXCLUDED.entry_type,
			direction = EXCLUDED.direction,
			amount = EXCLUDED.amount,
			category = EXCLUDED.category,
			metal = EXCLUDED.metal,
			description = EXCLUDED.description,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ledger_entry_id;
	`
	var id string
	err := tx.QueryRow(ctx, query,
		m.LedgerEntryID,
		m.EntryType,
		m.Direction,
		m.Amount,
		m.Category,
		m.RelatedDocID,
		m.Metal,
		m.Description,
		m.EntryDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		return "", mapWriteError(err, "failed to upsert ledger entry for "+m.RelatedDocID)
	}
	return id, nil
}

func linkLedgerEntry(ctx context.Context, tx pgx.Tx, txn domain.MetalTransaction, ledgerEntryID string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE metal_transactions SET ledger_entry_id = $1 WHERE transaction_id = $2 AND metal = $3;`,
		ledgerEntryID, txn.TransactionID, string(txn.Metal))
	if err != nil {
		return mapWriteError(err, "failed to link ledger entry to "+txn.TransactionID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateMetalTransaction rewrites mutable columns, replaces items and re-syncs the ledger mirror.
func (r *PgxMetalTransactionRepository) UpdateMetalTransaction(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) (string, error) {
	row, items := mapping.ToModelMetalTransaction(txn)
	var ledgerID string
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE metal_transactions SET
				total_weight = $3, subtotal = $4, total = $5, advance_paid = $6, remaining = $7,
				payment_status = $8, payment_mode = $9, bill_number = $10, notes = $11,
				last_updated_at = $12, last_updated_by = $13
			WHERE transaction_id = $1 AND metal = $2;
		`
		tag, err := tx.Exec(ctx, query,
			row.TransactionID,
			row.Metal,
			row.TotalWeight,
			row.Subtotal,
			row.Total,
			row.AdvancePaid,
			row.Remaining,
			row.PaymentStatus,
			row.PaymentMode,
			row.BillNumber,
			row.Notes,
			row.LastUpdatedAt,
			row.LastUpdatedBy,
		)
		if err != nil {
			return mapWriteError(err, "failed to update metal transaction "+row.TransactionID)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM metal_transaction_items WHERE transaction_id = $1;`, row.TransactionID); err != nil {
			return mapWriteError(err, "failed to replace items of "+row.TransactionID)
		}
		if err := insertItems(ctx, tx, items); err != nil {
			return err
		}

		ledgerID, err = upsertLedgerEntry(ctx, tx, entry)
		if err != nil {
			return err
		}
		return linkLedgerEntry(ctx, tx, txn, ledgerID)
	})
	if err != nil {
		return "", err
	}
	return ledgerID, nil
}

// DeleteMetalTransaction removes the transaction, its items (by cascade) and every ledger entry pointing at it.
func (r *PgxMetalTransactionRepository) DeleteMetalTransaction(ctx context.Context, metal domain.Metal, transactionID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var linked *string
		err := tx.QueryRow(ctx,
			`DELETE FROM metal_transactions WHERE transaction_id = $1 AND metal = $2 RETURNING ledger_entry_id;`,
			transactionID, string(metal)).Scan(&linked)
		if err != nil {
			return mapReadError(err, "failed to delete metal transaction "+transactionID)
		}
		_, err = tx.Exec(ctx,
			`DELETE FROM ledger_entries WHERE related_doc_id = $1 OR ledger_entry_id = $2;`,
			transactionID, linked)
		if err != nil {
			return mapWriteError(err, "failed to delete ledger entries of "+transactionID)
		}
		return nil
	})
}

// SyncLedgerEntry upserts the mirror and links it to the transaction.
func (r *PgxMetalTransactionRepository) SyncLedgerEntry(ctx context.Context, txn domain.MetalTransaction, entry domain.LedgerEntry) (string, error) {
	var ledgerID string
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		ledgerID, err = upsertLedgerEntry(ctx, tx, entry)
		if err != nil {
			return err
		}
		return linkLedgerEntry(ctx, tx, txn, ledgerID)
	})
	if err != nil {
		return "", err
	}
	return ledgerID, nil
}

// FindMetalTransactionByID retrieves a transaction with its items.
func (r *PgxMetalTransactionRepository) FindMetalTransactionByID(ctx context.Context, metal domain.Metal, transactionID string) (*domain.MetalTransaction, error) {
	query := `SELECT ` + metalTransactionColumns + ` FROM metal_transactions t WHERE t.transaction_id = $1 AND t.metal = $2;`
	m, err := scanMetalTransaction(r.Pool.QueryRow(ctx, query, transactionID, string(metal)))
	if err != nil {
		return nil, mapReadError(err, "failed to find metal transaction by ID "+transactionID)
	}
	txns, err := r.attachItems(ctx, []models.MetalTransaction{m})
	if err != nil {
		return nil, err
	}
	return &txns[0], nil
}

func buildMetalTransactionWhere(filter domain.MetalTransactionFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Metal != "" {
		w.add("t.metal = ?", string(filter.Metal))
	}
	if filter.TransactionType != nil {
		w.add("t.transaction_type = ?", string(*filter.TransactionType))
	}
	if filter.CustomerID != nil {
		w.add("t.customer_id = ?", *filter.CustomerID)
	}
	if filter.StartDate != nil {
		w.add("t.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		w.add("t.created_at < ?", *filter.EndDate)
	}
	if filter.Purity != nil {
		w.add("EXISTS (SELECT 1 FROM metal_transaction_items i WHERE i.transaction_id = t.transaction_id AND i.purity = ?)", string(*filter.Purity))
	}
	if filter.PaymentStatus != nil {
		w.add("t.payment_status = ?", string(*filter.PaymentStatus))
	}
	return w
}

// ListMetalTransactions returns one page of matching transactions and the total match count.
func (r *PgxMetalTransactionRepository) ListMetalTransactions(ctx context.Context, filter domain.MetalTransactionFilter) ([]domain.MetalTransaction, int, error) {
	w := buildMetalTransactionWhere(filter)
	where := w.String()

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM metal_transactions t`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to count metal transactions", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[domain.SortByCreatedAt]
	}
	direction := "DESC"
	if filter.SortOrder == domain.SortAsc {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM metal_transactions t%s ORDER BY %s %s, t.transaction_id %s`,
		metalTransactionColumns, where, column, direction, direction)
	if filter.Limit > 0 {
		query += " LIMIT " + w.next(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + w.next(filter.Offset)
	}

	txns, err := r.queryMetalTransactions(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// FindUnreconciledMetalTransactions returns transactions whose mirror is missing or unlinked,
// or disagrees on amount, sign or category.
func (r *PgxMetalTransactionRepository) FindUnreconciledMetalTransactions(ctx context.Context, limit int) ([]domain.MetalTransaction, error) {
	query := `
		SELECT ` + metalTransactionColumns + `
		FROM metal_transactions t
		LEFT JOIN ledger_entries l ON l.related_doc_id = t.transaction_id
		WHERE t.ledger_entry_id IS NULL
		   OR l.ledger_entry_id IS NULL
		   OR l.ledger_entry_id <> t.ledger_entry_id
		   OR l.amount <> t.total
		   OR ` + mirrorClassificationMismatch() + `
		ORDER BY t.created_at
		LIMIT $1;
	`
	return r.queryMetalTransactions(ctx, query, limit)
}

// mirrorClassificationMismatch matches mirrors whose sign or category disagrees with
// domain.LedgerClassification for the transaction type.
func mirrorClassificationMismatch() string {
	sellDir, sellCat := domain.LedgerClassification(domain.Sell)
	buyDir, buyCat := domain.LedgerClassification(domain.Buy)
	return fmt.Sprintf(
		"(l.direction <> CASE t.transaction_type WHEN '%s' THEN %d ELSE %d END OR l.category <> CASE t.transaction_type WHEN '%s' THEN '%s' ELSE '%s' END)",
		domain.Sell, sellDir, buyDir, domain.Sell, sellCat, buyCat)
}

func (r *PgxMetalTransactionRepository) queryMetalTransactions(ctx context.Context, query string, args ...any) ([]domain.MetalTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query metal transactions", err)
	}
	defer rows.Close()

	headers := []models.MetalTransaction{}
	for rows.Next() {
		m, err := scanMetalTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan metal transaction row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating metal transaction rows", err)
	}
	return r.attachItems(ctx, headers)
}

// attachItems loads the items of every header with one query and converts to domain values.
func (r *PgxMetalTransactionRepository) attachItems(ctx context.Context, headers []models.MetalTransaction) ([]domain.MetalTransaction, error) {
	if len(headers) == 0 {
		return []domain.MetalTransaction{}, nil
	}
	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.TransactionID
	}

	query := `
		SELECT transaction_id, position, item_name, description, purity, weight, rate_per_gram,
		       making_charges, wastage_percent, tax, total, photos, hallmark_number, certificate_number
		FROM metal_transaction_items
		WHERE transaction_id = ANY($1::uuid[])
		ORDER BY transaction_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query metal transaction items", err)
	}
	defer rows.Close()

	byTxn := make(map[string][]models.MetalTransactionItem, len(headers))
	for rows.Next() {
		var it models.MetalTransactionItem
		err := rows.Scan(
			&it.TransactionID,
			&it.Position,
			&it.ItemName,
			&it.Description,
			&it.Purity,
			&it.Weight,
			&it.RatePerGram,
			&it.MakingCharges,
			&it.WastagePercent,
			&it.Tax,
			&it.Total,
			&it.Photos,
			&it.HallmarkNumber,
			&it.CertificateNumber,
		)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan metal transaction item row", err)
		}
		byTxn[it.TransactionID] = append(byTxn[it.TransactionID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating metal transaction item rows", err)
	}

	out := make([]domain.MetalTransaction, len(headers))
	for i, h := range headers {
		out[i] = mapping.ToDomainMetalTransaction(h, byTxn[h.TransactionID])
	}
	return out, nil
}
