package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is stored as JSONB on metal_transactions.supplier.
type Supplier struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	GSTNumber string `json:"gstNumber,omitempty"`
	Email     string `json:"email,omitempty"`
}

// RatesSnapshot is stored as JSONB on metal_transactions.market_rates. Rates are paise per gram.
type RatesSnapshot struct {
	Rates     map[string]int64 `json:"rates"`
	Source    string           `json:"source"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// MetalTransaction is a row of metal_transactions. Money columns are paise.
type MetalTransaction struct {
	TransactionID    string          `db:"transaction_id"`
	Metal            string          `db:"metal"`
	TransactionType  string          `db:"transaction_type"`
	CounterpartyRole *string         `db:"counterparty_role"`
	CustomerID       *string         `db:"customer_id"`
	CounterpartyName *string         `db:"counterparty_name"`
	Supplier         *Supplier       `db:"supplier"`
	TotalWeight      decimal.Decimal `db:"total_weight"`
	Subtotal         int64           `db:"subtotal"`
	Total            int64           `db:"total"`
	AdvancePaid      int64           `db:"advance_paid"`
	Remaining        int64           `db:"remaining"`
	PaymentStatus    string          `db:"payment_status"`
	PaymentMode      string          `db:"payment_mode"`
	InvoiceNumber    string          `db:"invoice_number"`
	BillNumber       string          `db:"bill_number"`
	Notes            string          `db:"notes"`
	MarketRates      *RatesSnapshot  `db:"market_rates"`
	LedgerEntryID    *string         `db:"ledger_entry_id"`
	AuditFields
}

// MetalTransactionItem is a row of metal_transaction_items, ordered by Position.
type MetalTransactionItem struct {
	TransactionID     string          `db:"transaction_id"`
	Position          int32           `db:"position"`
	ItemName          string          `db:"item_name"`
	Description       string          `db:"description"`
	Purity            string          `db:"purity"`
	Weight            decimal.Decimal `db:"weight"`
	RatePerGram       int64           `db:"rate_per_gram"`
	MakingCharges     int64           `db:"making_charges"`
	WastagePercent    decimal.Decimal `db:"wastage_percent"`
	Tax               int64           `db:"tax"`
	Total             int64           `db:"total"`
	Photos            []string        `db:"photos"`
	HallmarkNumber    string          `db:"hallmark_number"`
	CertificateNumber string          `db:"certificate_number"`
}
