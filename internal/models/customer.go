package models

// Customer is a row of customers.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	Address    string `db:"address"`
	AuditFields
}
