package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// Amounts in requests and responses are rupees; the domain works in paise.

// LineItemRequest is one item as submitted by the dashboard. Totals are never accepted.
type LineItemRequest struct {
	ItemName          string           `json:"itemName" binding:"required"`
	Description       string           `json:"description"`
	Purity            string           `json:"purity" binding:"required"`
	Weight            decimal.Decimal  `json:"weight" binding:"decimal_gt0"`
	RatePerGram       *decimal.Decimal `json:"ratePerGram" binding:"required,decimal_gte0"`
	MakingCharges     decimal.Decimal  `json:"makingCharges" binding:"decimal_gte0"`
	WastagePercent    decimal.Decimal  `json:"wastagePercent" binding:"percent"`
	Tax               decimal.Decimal  `json:"tax" binding:"decimal_gte0"`
	Photos            []string         `json:"photos" binding:"omitempty,dive,uri"`
	HallmarkNumber    string           `json:"hallmarkNumber"`
	CertificateNumber string           `json:"certificateNumber"`
}

// SupplierRequest is an inline supplier for BUY transactions.
type SupplierRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	GSTNumber string `json:"gstNumber"`
	Email     string `json:"email" binding:"omitempty,email"`
}

// CounterpartyRequest tags the other party of a transaction.
type CounterpartyRequest struct {
	Role       domain.CounterpartyRole `json:"role" binding:"required,oneof=CUSTOMER SUPPLIER"`
	CustomerID *string                 `json:"customerId"`
	Supplier   *SupplierRequest        `json:"supplier"`
}

// CreateMetalTransactionRequest defines the body of POST /api/{metal}.
type CreateMetalTransactionRequest struct {
	TransactionType   domain.TransactionType `json:"transactionType" binding:"required,oneof=BUY SELL"`
	Counterparty      *CounterpartyRequest   `json:"counterparty"`
	Customer          *string                `json:"customer"` // shorthand for a CUSTOMER counterparty
	Items             []LineItemRequest      `json:"items" binding:"required,min=1,dive"`
	AdvanceAmount     decimal.Decimal        `json:"advanceAmount" binding:"decimal_gte0"`
	PaymentMode       domain.PaymentMode     `json:"paymentMode" binding:"omitempty,oneof=CASH UPI BANK_TRANSFER CARD CHEQUE"`
	Notes             string                 `json:"notes"`
	BillNumber        string                 `json:"billNumber"`
	FetchCurrentRates bool                   `json:"fetchCurrentRates"`
}

// UpdateMetalTransactionRequest defines the body of PUT /api/{metal}/{id}. Nil fields are left unchanged.
type UpdateMetalTransactionRequest struct {
	TransactionType *domain.TransactionType `json:"transactionType" binding:"omitempty,oneof=BUY SELL"`
	Counterparty    *CounterpartyRequest    `json:"counterparty"`
	Customer        *string                 `json:"customer"`
	Items           []LineItemRequest       `json:"items" binding:"omitempty,dive"`
	AdvanceAmount   *decimal.Decimal        `json:"advanceAmount" binding:"omitempty,decimal_gte0"`
	PaymentMode     *domain.PaymentMode     `json:"paymentMode" binding:"omitempty,oneof=CASH UPI BANK_TRANSFER CARD CHEQUE"`
	Notes           *string                 `json:"notes"`
	BillNumber      *string                 `json:"billNumber"`
}

// ResolveCounterparty folds the customer shorthand into a counterparty request.
func ResolveCounterparty(cp *CounterpartyRequest, customer *string) *CounterpartyRequest {
	if cp != nil {
		return cp
	}
	if customer == nil || *customer == "" {
		return nil
	}
	id := *customer
	return &CounterpartyRequest{Role: domain.RoleCustomer, CustomerID: &id}
}

// ToDomain converts the request into a domain counterparty without a display name.
func (r *CounterpartyRequest) ToDomain() *domain.Counterparty {
	if r == nil {
		return nil
	}
	cp := &domain.Counterparty{Role: r.Role}
	if r.CustomerID != nil {
		id := *r.CustomerID
		cp.CustomerID = &id
	}
	if r.Supplier != nil {
		cp.Supplier = &domain.SupplierDetails{
			Name:      r.Supplier.Name,
			Phone:     r.Supplier.Phone,
			Address:   r.Supplier.Address,
			GSTNumber: r.Supplier.GSTNumber,
			Email:     r.Supplier.Email,
		}
		cp.DisplayName = r.Supplier.Name
	}
	return cp
}

// ToDomain converts rupee amounts to paise. A missing rate converts to zero; use
// ToDomainLineItems to reject it.
func (r LineItemRequest) ToDomain() domain.LineItem {
	var rate decimal.Decimal
	if r.RatePerGram != nil {
		rate = *r.RatePerGram
	}
	return domain.LineItem{
		ItemName:          r.ItemName,
		Description:       r.Description,
		Purity:            domain.Purity(r.Purity),
		Weight:            domain.NewGrams(r.Weight),
		RatePerGram:       domain.MoneyFromMajor(rate),
		MakingCharges:     domain.MoneyFromMajor(r.MakingCharges),
		WastagePercent:    r.WastagePercent,
		Tax:               domain.MoneyFromMajor(r.Tax),
		Photos:            r.Photos,
		HallmarkNumber:    r.HallmarkNumber,
		CertificateNumber: r.CertificateNumber,
	}
}

// ToDomainLineItems converts a slice of item requests. Every item must carry a rate;
// an explicit zero is accepted.
func ToDomainLineItems(items []LineItemRequest) ([]domain.LineItem, error) {
	var errs apperrors.ValidationErrors
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		if it.RatePerGram == nil {
			errs.Add(fmt.Sprintf("items[%d].ratePerGram", i), "is required")
		}
		out[i] = it.ToDomain()
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// LineItemResponse is a line item in rupees.
type LineItemResponse struct {
	ItemName          string          `json:"itemName"`
	Description       string          `json:"description,omitempty"`
	Purity            domain.Purity   `json:"purity"`
	Weight            domain.Grams    `json:"weight"`
	RatePerGram       decimal.Decimal `json:"ratePerGram"`
	MakingCharges     decimal.Decimal `json:"makingCharges"`
	WastagePercent    decimal.Decimal `json:"wastagePercent"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	Photos            []string        `json:"photos,omitempty"`
	HallmarkNumber    string          `json:"hallmarkNumber,omitempty"`
	CertificateNumber string          `json:"certificateNumber,omitempty"`
}

// MarketRatesSnapshotResponse is the creation-time rate snapshot in rupees per gram.
type MarketRatesSnapshotResponse struct {
	Rates     map[domain.Purity]decimal.Decimal `json:"rates"`
	Source    string                            `json:"source"`
	FetchedAt time.Time                         `json:"fetchedAt"`
}

// MetalTransactionResponse defines the data returned for a metal transaction.
type MetalTransactionResponse struct {
	TransactionID   string                       `json:"transactionId"`
	Metal           domain.Metal                 `json:"metal"`
	TransactionType domain.TransactionType       `json:"transactionType"`
	Counterparty    *domain.Counterparty         `json:"counterparty,omitempty"`
	CustomerName    string                       `json:"customerName"`
	Items           []LineItemResponse           `json:"items"`
	TotalWeight     domain.Grams                 `json:"totalWeight"`
	Subtotal        decimal.Decimal              `json:"subtotal"`
	TotalAmount     decimal.Decimal              `json:"totalAmount"`
	AdvanceAmount   decimal.Decimal              `json:"advanceAmount"`
	RemainingAmount decimal.Decimal              `json:"remainingAmount"`
	PaymentStatus   domain.PaymentStatus         `json:"paymentStatus"`
	PaymentMode     domain.PaymentMode           `json:"paymentMode"`
	InvoiceNumber   string                       `json:"invoiceNumber"`
	BillNumber      string                       `json:"billNumber,omitempty"`
	Notes           string                       `json:"notes,omitempty"`
	MarketRates     *MarketRatesSnapshotResponse `json:"marketRates,omitempty"`
	LedgerEntryID   *string                      `json:"ledgerEntryId,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	CreatedBy       string                       `json:"createdBy"`
	LastUpdatedAt   time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy   string                       `json:"lastUpdatedBy"`
}

// ToMetalTransactionResponse converts a domain transaction to its response DTO.
func ToMetalTransactionResponse(t domain.MetalTransaction) MetalTransactionResponse {
	items := make([]LineItemResponse, len(t.Items))
	for i, it := range t.Items {
		items[i] = LineItemResponse{
			ItemName:          it.ItemName,
			Description:       it.Description,
			Purity:            it.Purity,
			Weight:            it.Weight,
			RatePerGram:       it.RatePerGram.Major(),
			MakingCharges:     it.MakingCharges.Major(),
			WastagePercent:    it.WastagePercent,
			Tax:               it.Tax.Major(),
			Total:             it.Total.Major(),
			Photos:            it.Photos,
			HallmarkNumber:    it.HallmarkNumber,
			CertificateNumber: it.CertificateNumber,
		}
	}

	var snapshot *MarketRatesSnapshotResponse
	if t.MarketRates != nil {
		snapshot = &MarketRatesSnapshotResponse{
			Rates:     MajorRates(t.MarketRates.Rates),
			Source:    t.MarketRates.Source,
			FetchedAt: t.MarketRates.FetchedAt,
		}
	}

	return MetalTransactionResponse{
		TransactionID:   t.TransactionID,
		Metal:           t.Metal,
		TransactionType: t.TransactionType,
		Counterparty:    t.Counterparty,
		CustomerName:    t.Counterparty.Name(),
		Items:           items,
		TotalWeight:     t.TotalWeight,
		Subtotal:        t.Subtotal.Major(),
		TotalAmount:     t.Total.Major(),
		AdvanceAmount:   t.AdvancePaid.Major(),
		RemainingAmount: t.Remaining.Major(),
		PaymentStatus:   t.PaymentStatus,
		PaymentMode:     t.PaymentMode,
		InvoiceNumber:   t.InvoiceNumber,
		BillNumber:      t.BillNumber,
		Notes:           t.Notes,
		MarketRates:     snapshot,
		LedgerEntryID:   t.LedgerEntryID,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
		LastUpdatedAt:   t.LastUpdatedAt,
		LastUpdatedBy:   t.LastUpdatedBy,
	}
}

// ToMetalTransactionResponses converts a slice of transactions.
func ToMetalTransactionResponses(txns []domain.MetalTransaction) []MetalTransactionResponse {
	out := make([]MetalTransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = ToMetalTransactionResponse(t)
	}
	return out
}

// MajorRates converts a per-purity paise map to rupees.
func MajorRates(rates map[domain.Purity]domain.Money) map[domain.Purity]decimal.Decimal {
	out := make(map[domain.Purity]decimal.Decimal, len(rates))
	for p, r := range rates {
		out[p] = r.Major()
	}
	return out
}

// ListMetalTransactionsResponse is a page of transactions.
type ListMetalTransactionsResponse struct {
	Transactions []MetalTransactionResponse `json:"transactions"`
	Pagination   pagination.Meta            `json:"pagination"`
}

// CustomerStatsResponse is CustomerStats in rupees.
type CustomerStatsResponse struct {
	TransactionCount  int             `json:"transactionCount"`
	TotalBought       decimal.Decimal `json:"totalBought"`
	TotalSold         decimal.Decimal `json:"totalSold"`
	TotalWeight       domain.Grams    `json:"totalWeight"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	LastTransactionAt *time.Time      `json:"lastTransactionAt,omitempty"`
}

// CustomerHistoryResponse is a page of one customer's transactions with lifetime stats.
type CustomerHistoryResponse struct {
	Customer     CustomerResponse           `json:"customer"`
	Transactions []MetalTransactionResponse `json:"transactions"`
	Pagination   pagination.Meta            `json:"pagination"`
	Stats        CustomerStatsResponse      `json:"stats"`
}

// ToCustomerHistoryResponse converts a customer history page.
func ToCustomerHistoryResponse(h domain.CustomerHistory, p pagination.Params) CustomerHistoryResponse {
	return CustomerHistoryResponse{
		Customer:     ToCustomerResponse(h.Customer),
		Transactions: ToMetalTransactionResponses(h.Transactions),
		Pagination:   pagination.NewMeta(p, h.Total),
		Stats: CustomerStatsResponse{
			TransactionCount:  h.Stats.TransactionCount,
			TotalBought:       h.Stats.TotalBought.Major(),
			TotalSold:         h.Stats.TotalSold.Major(),
			TotalWeight:       h.Stats.TotalWeight,
			NetAmount:         h.Stats.NetAmount.Major(),
			LastTransactionAt: h.Stats.LastTransactionAt,
		},
	}
}
