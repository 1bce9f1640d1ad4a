package domain

// CounterpartyRole tags who the shop dealt with.
type CounterpartyRole string

const (
	RoleCustomer CounterpartyRole = "CUSTOMER"
	RoleSupplier CounterpartyRole = "SUPPLIER"
)

// SupplierDetails is recorded inline for BUY transactions from suppliers without a customer record.
type SupplierDetails struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	GSTNumber string `json:"gstNumber,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Counterparty is the other side of a metal transaction. Exactly one of
// CustomerID or Supplier is set, matching Role.
type Counterparty struct {
	Role        CounterpartyRole `json:"role"`
	CustomerID  *string          `json:"customerId,omitempty"`
	Supplier    *SupplierDetails `json:"supplier,omitempty"`
	DisplayName string           `json:"displayName"`
}

// SameIdentity reports whether two counterparties refer to the same party.
// DisplayName is a snapshot and is ignored.
func (c *Counterparty) SameIdentity(o *Counterparty) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}
	if c.Role != o.Role {
		return false
	}
	switch c.Role {
	case RoleCustomer:
		return c.CustomerID != nil && o.CustomerID != nil && *c.CustomerID == *o.CustomerID
	case RoleSupplier:
		return c.Supplier != nil && o.Supplier != nil && c.Supplier.Name == o.Supplier.Name && c.Supplier.Phone == o.Supplier.Phone
	}
	return false
}

// Name is the label used in reports.
func (c *Counterparty) Name() string {
	if c == nil || c.DisplayName == "" {
		return WalkInCustomer
	}
	return c.DisplayName
}
