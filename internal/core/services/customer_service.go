package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
)

type customerService struct {
	BaseService
	serviceOptions
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates the customer service.
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade, opts ...Option) portssvc.CustomerSvcFacade {
	return &customerService{
		serviceOptions: newServiceOptions(opts),
		customerRepo:   repo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	now := s.now()
	customer := domain.Customer{
		CustomerID: s.newID(),
		Name:       name,
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.TrimSpace(req.Email),
		Address:    strings.TrimSpace(req.Address),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("customer_id", customer.CustomerID))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	if err := validateID("id", customerID); err != nil {
		return nil, err
	}
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}
