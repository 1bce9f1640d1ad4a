package services

import (
	"context"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
)

// CustomerSvcFacade defines the minimal customer operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
}
