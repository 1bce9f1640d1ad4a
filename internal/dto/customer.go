package dto

import (
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID    string    `json:"customerId"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse.
func ToCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}
