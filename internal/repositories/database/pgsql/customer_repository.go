package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/jewel_backoffice_app/internal/models"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, name, phone, email, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.Name, m.Phone, m.Email, m.Address,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		err = mapWriteError(err, "failed to insert customer "+m.CustomerID)
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("customer %s: %w", m.CustomerID, apperrors.ErrDuplicate)
		}
		return err
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, name, phone, email, address, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE customer_id = $1;
	`
	var m models.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID, &m.Name, &m.Phone, &m.Email, &m.Address,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapReadError(err, "failed to find customer by ID "+customerID)
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}
