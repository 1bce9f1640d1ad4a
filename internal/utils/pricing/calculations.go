// Package pricing holds the pure arithmetic behind metal transactions: line
// item totals and the transaction-level aggregates derived from them.
package pricing

import (
	"fmt"
	"strings"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var maxWastagePercent = decimal.NewFromInt(100)

// ValidateItem checks one line item against the metal profile. The returned
// slice is empty when the item is usable.
func ValidateItem(profile domain.MetalProfile, idx int, item domain.LineItem) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", idx, name) }

	if strings.TrimSpace(item.ItemName) == "" {
		errs.Add(field("itemName"), "is required")
	}
	if item.Purity == "" {
		errs.Add(field("purity"), "is required")
	} else if !profile.SupportsPurity(item.Purity) {
		errs.Add(field("purity"), fmt.Sprintf("must be one of %s for %s", strings.Join(profile.PurityNames(), ", "), profile.Metal.Slug()))
	}
	if !item.Weight.IsPositive() {
		errs.Add(field("weight"), "must be greater than 0")
	}
	if item.RatePerGram.IsNegative() {
		errs.Add(field("ratePerGram"), "must not be negative")
	}
	if item.MakingCharges.IsNegative() {
		errs.Add(field("makingCharges"), "must not be negative")
	}
	if item.Tax.IsNegative() {
		errs.Add(field("tax"), "must not be negative")
	}
	if item.WastagePercent.IsNegative() || item.WastagePercent.GreaterThan(maxWastagePercent) {
		errs.Add(field("wastagePercent"), "must be between 0 and 100")
	}
	return errs
}

// ComputeItemTotal returns
//
//	round(weight*rate + weight*rate*wastage/100 + making + tax)
//
// in paise, rounding half-up once at the end.
func ComputeItemTotal(profile domain.MetalProfile, item domain.LineItem) (domain.Money, error) {
	if errs := ValidateItem(profile, 0, item); len(errs) > 0 {
		return 0, errs
	}
	return itemTotal(item), nil
}

func itemTotal(item domain.LineItem) domain.Money {
	base := item.Weight.Decimal().Mul(item.RatePerGram.Decimal())
	wastage := base.Mul(item.WastagePercent).Shift(-2)
	sum := base.Add(wastage).Add(item.MakingCharges.Decimal()).Add(item.Tax.Decimal())
	return domain.RoundToMoney(sum)
}

// DerivePaymentStatus is PAID once nothing remains, PARTIAL with any advance, PENDING otherwise.
func DerivePaymentStatus(total, advancePaid domain.Money) domain.PaymentStatus {
	remaining := total.Sub(advancePaid)
	switch {
	case remaining <= 0:
		return domain.PaymentPaid
	case advancePaid > 0:
		return domain.PaymentPartial
	default:
		return domain.PaymentPending
	}
}

// ValidateTransaction checks everything RecomputeTransaction relies on, collecting all problems.
func ValidateTransaction(profile domain.MetalProfile, txn domain.MetalTransaction) error {
	var errs apperrors.ValidationErrors
	if txn.Metal != profile.Metal {
		errs.Add("metal", fmt.Sprintf("transaction metal %q does not match %q", txn.Metal, profile.Metal))
	}
	if !txn.TransactionType.IsValid() {
		errs.Add("transactionType", "must be BUY or SELL")
	}
	if len(txn.Items) == 0 {
		errs.Add("items", "at least one item is required")
	}
	for i, item := range txn.Items {
		errs = append(errs, ValidateItem(profile, i, item)...)
	}
	if txn.AdvancePaid.IsNegative() {
		errs.Add("advanceAmount", "must not be negative")
	}
	if txn.PaymentMode != "" && !txn.PaymentMode.IsValid() {
		errs.Add("paymentMode", "must be one of CASH, UPI, BANK_TRANSFER, CARD, CHEQUE")
	}
	return errs.OrNil()
}

// RecomputeTransaction returns a copy of txn with every derived field refreshed
// from its items and advance. It is idempotent.
func RecomputeTransaction(profile domain.MetalProfile, txn domain.MetalTransaction) (domain.MetalTransaction, error) {
	if err := ValidateTransaction(profile, txn); err != nil {
		return domain.MetalTransaction{}, err
	}

	out := txn
	out.Items = make([]domain.LineItem, len(txn.Items))
	weight := domain.ZeroGrams
	var total domain.Money
	for i, item := range txn.Items {
		item.Total = itemTotal(item)
		out.Items[i] = item
		weight = weight.Add(item.Weight)
		total = total.Add(item.Total)
	}

	out.TotalWeight = weight
	out.Subtotal = total
	out.Total = total
	out.Remaining = total.Sub(txn.AdvancePaid)
	out.PaymentStatus = DerivePaymentStatus(total, txn.AdvancePaid)
	return out, nil
}
