package repositories

import (
	"context"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
)

// CustomerReader defines read operations for customers.
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

// CustomerWriter defines write operations for customers.
type CustomerWriter interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all customer repository operations.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
