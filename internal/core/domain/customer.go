package domain

// Customer is the minimal customer record metal transactions reference.
type Customer struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	AuditFields
}

// CustomerHistory is one page of a customer's transactions plus totals over all of them.
type CustomerHistory struct {
	Customer     Customer           `json:"customer"`
	Transactions []MetalTransaction `json:"transactions"`
	Total        int                `json:"total"`
	Stats        CustomerStats      `json:"stats"`
}
