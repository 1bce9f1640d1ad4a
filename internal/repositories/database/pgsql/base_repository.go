package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a committed transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// inTx runs fn inside a transaction, committing only if fn succeeds.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// mapWriteError turns constraint violations into domain sentinels and wraps everything else.
func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %s: %w", msg, pgErr.ConstraintName, apperrors.ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %s: %w", msg, pgErr.ConstraintName, apperrors.ErrNotFound)
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

// mapReadError maps pgx.ErrNoRows to apperrors.ErrNotFound.
func mapReadError(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
// A "?" in a clause is replaced by the argument's placeholder.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.Replace(clause, "?", "$"+strconv.Itoa(len(w.args)), 1))
}

// next reserves a placeholder for an argument used outside the WHERE clause.
func (w *whereBuilder) next(arg any) string {
	w.args = append(w.args, arg)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
