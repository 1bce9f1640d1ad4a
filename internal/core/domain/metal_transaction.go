package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from the advance paid against the total.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentPartial || s == PaymentPaid
}

// PaymentMode is how the advance was settled.
type PaymentMode string

const (
	PaymentCash         PaymentMode = "CASH"
	PaymentUPI          PaymentMode = "UPI"
	PaymentBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentCard         PaymentMode = "CARD"
	PaymentCheque       PaymentMode = "CHEQUE"
)

func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentBankTransfer, PaymentCard, PaymentCheque:
		return true
	}
	return false
}

// LineItem is one physical piece within a transaction. Total is always derived.
type LineItem struct {
	ItemName          string          `json:"itemName"`
	Description       string          `json:"description,omitempty"`
	Purity            Purity          `json:"purity"`
	Weight            Grams           `json:"weight"`
	RatePerGram       Money           `json:"ratePerGram"`
	MakingCharges     Money           `json:"makingCharges"`
	WastagePercent    decimal.Decimal `json:"wastagePercent"`
	Tax               Money           `json:"tax"`
	Total             Money           `json:"total"`
	Photos            []string        `json:"photos,omitempty"`
	HallmarkNumber    string          `json:"hallmarkNumber,omitempty"`
	CertificateNumber string          `json:"certificateNumber,omitempty"`
}

// MarketRatesSnapshot records the per-purity rates seen at creation. Informational only.
type MarketRatesSnapshot struct {
	Rates     map[Purity]Money `json:"rates"`
	Source    string           `json:"source"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// MetalTransaction is one buy or sell event.
type MetalTransaction struct {
	TransactionID   string               `json:"transactionId"`
	Metal           Metal                `json:"metal"`
	TransactionType TransactionType      `json:"transactionType"`
	Counterparty    *Counterparty        `json:"counterparty,omitempty"`
	Items           []LineItem           `json:"items"`
	TotalWeight     Grams                `json:"totalWeight"`
	Subtotal        Money                `json:"subtotal"`
	Total           Money                `json:"total"`
	AdvancePaid     Money                `json:"advancePaid"`
	Remaining       Money                `json:"remaining"`
	PaymentStatus   PaymentStatus        `json:"paymentStatus"`
	PaymentMode     PaymentMode          `json:"paymentMode"`
	InvoiceNumber   string               `json:"invoiceNumber"`
	BillNumber      string               `json:"billNumber,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	MarketRates     *MarketRatesSnapshot `json:"marketRates,omitempty"`
	LedgerEntryID   *string              `json:"ledgerEntryId,omitempty"`
	AuditFields
}

// CustomerID returns the linked customer id, if the counterparty is a customer.
func (t MetalTransaction) CustomerID() (string, bool) {
	if t.Counterparty == nil || t.Counterparty.Role != RoleCustomer || t.Counterparty.CustomerID == nil {
		return "", false
	}
	return *t.Counterparty.CustomerID, true
}

// HasPurity reports whether any item is of the given purity.
func (t MetalTransaction) HasPurity(p Purity) bool {
	for _, it := range t.Items {
		if it.Purity == p {
			return true
		}
	}
	return false
}

// MetalTransactionFilter narrows list and report queries. Zero values mean "any".
type MetalTransactionFilter struct {
	Metal           Metal
	TransactionType *TransactionType
	CustomerID      *string
	StartDate       *time.Time // inclusive
	EndDate         *time.Time // exclusive
	Purity          *Purity
	PaymentStatus   *PaymentStatus
	SortBy          string
	SortOrder       SortOrder
	Limit           int // 0 means no limit
	Offset          int
}

// Sort keys accepted by list queries.
const (
	SortByCreatedAt     = "createdAt"
	SortByTotalAmount   = "totalAmount"
	SortByInvoiceNumber = "invoiceNumber"
	SortByTotalWeight   = "totalWeight"
)

// IsValidSortKey reports whether key is an accepted SortBy value.
func IsValidSortKey(key string) bool {
	switch key {
	case SortByCreatedAt, SortByTotalAmount, SortByInvoiceNumber, SortByTotalWeight:
		return true
	}
	return false
}
