package mapping

import (
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/models"
)

// ToModelCustomer converts a domain customer to its row.
func ToModelCustomer(c domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  c.CustomerID,
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		AuditFields: ToModelAuditFields(c.AuditFields),
	}
}

// ToDomainCustomer converts a customer row to the domain customer.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
