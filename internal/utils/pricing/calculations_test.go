package pricing_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gold = domain.MustProfile(domain.Gold)

func ring() domain.LineItem {
	return domain.LineItem{
		ItemName:       "Ring",
		Purity:         "22K",
		Weight:         domain.MustGrams("10"),
		RatePerGram:    500000,
		MakingCharges:  1000,
		WastagePercent: decimal.NewFromInt(2),
		Tax:            500,
	}
}

func TestComputeItemTotal(t *testing.T) {
	tests := []struct {
		name string
		item func() domain.LineItem
		want domain.Money
	}{
		{
			name: "weight rate making wastage tax",
			item: ring,
			want: 5101500,
		},
		{
			name: "plain 24K coin",
			item: func() domain.LineItem {
				return domain.LineItem{ItemName: "Coin", Purity: "24K", Weight: domain.MustGrams("5"), RatePerGram: 600000}
			},
			want: 3000000,
		},
		{
			name: "fractional weight rounds half up once",
			item: func() domain.LineItem {
				// 0.333 * 1501 = 499.833, + 1.5% = 507.330495 -> 507
				return domain.LineItem{ItemName: "Chain", Purity: "18K", Weight: domain.MustGrams("0.333"), RatePerGram: 1501, WastagePercent: decimal.RequireFromString("1.5")}
			},
			want: 507,
		},
		{
			name: "exact half rounds up",
			item: func() domain.LineItem {
				return domain.LineItem{ItemName: "Pin", Purity: "24K", Weight: domain.MustGrams("0.5"), RatePerGram: 1}
			},
			want: 1,
		},
		{
			name: "zero rate is allowed",
			item: func() domain.LineItem {
				return domain.LineItem{ItemName: "Sample", Purity: "24K", Weight: domain.MustGrams("1"), MakingCharges: 250}
			},
			want: 250,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.ComputeItemTotal(gold, tt.item())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeItemTotal_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.LineItem)
		field  string
	}{
		{"missing name", func(i *domain.LineItem) { i.ItemName = "  " }, "items[0].itemName"},
		{"missing purity", func(i *domain.LineItem) { i.Purity = "" }, "items[0].purity"},
		{"purity of another metal", func(i *domain.LineItem) { i.Purity = "925" }, "items[0].purity"},
		{"zero weight", func(i *domain.LineItem) { i.Weight = domain.ZeroGrams }, "items[0].weight"},
		{"negative rate", func(i *domain.LineItem) { i.RatePerGram = -1 }, "items[0].ratePerGram"},
		{"negative making", func(i *domain.LineItem) { i.MakingCharges = -1 }, "items[0].makingCharges"},
		{"negative tax", func(i *domain.LineItem) { i.Tax = -1 }, "items[0].tax"},
		{"wastage above 100", func(i *domain.LineItem) { i.WastagePercent = decimal.NewFromInt(101) }, "items[0].wastagePercent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := ring()
			tt.mutate(&item)
			_, err := pricing.ComputeItemTotal(gold, item)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			details := apperrors.Details(err)
			require.Len(t, details, 1)
			assert.Equal(t, tt.field, details[0].Field)
		})
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, domain.PaymentPaid, pricing.DerivePaymentStatus(1000, 1000))
	assert.Equal(t, domain.PaymentPartial, pricing.DerivePaymentStatus(1000, 1))
	assert.Equal(t, domain.PaymentPartial, pricing.DerivePaymentStatus(1000, 999))
	assert.Equal(t, domain.PaymentPending, pricing.DerivePaymentStatus(1000, 0))
	assert.Equal(t, domain.PaymentPaid, pricing.DerivePaymentStatus(1000, 1500))
	assert.Equal(t, domain.PaymentPaid, pricing.DerivePaymentStatus(0, 0))
}

func newTxn(advance domain.Money, items ...domain.LineItem) domain.MetalTransaction {
	return domain.MetalTransaction{
		Metal:           domain.Gold,
		TransactionType: domain.Sell,
		Items:           items,
		AdvancePaid:     advance,
		PaymentMode:     domain.PaymentCash,
	}
}

func TestRecomputeTransaction(t *testing.T) {
	second := domain.LineItem{ItemName: "Coin", Purity: "24K", Weight: domain.MustGrams("5"), RatePerGram: 600000}
	txn := newTxn(2000000, ring(), second)
	txn.Total = 1 // caller supplied totals are ignored
	txn.Items[0].Total = 42

	got, err := pricing.RecomputeTransaction(gold, txn)
	require.NoError(t, err)

	assert.Equal(t, domain.Money(5101500), got.Items[0].Total)
	assert.Equal(t, domain.Money(3000000), got.Items[1].Total)
	assert.Equal(t, domain.Money(8101500), got.Total)
	assert.Equal(t, got.Total, got.Subtotal)
	assert.True(t, got.TotalWeight.Equal(domain.MustGrams("15")))
	assert.Equal(t, domain.Money(6101500), got.Remaining)
	assert.Equal(t, domain.PaymentPartial, got.PaymentStatus)
	assert.Equal(t, domain.Money(42), txn.Items[0].Total, "input is not mutated")
}

func TestRecomputeTransaction_Idempotent(t *testing.T) {
	inputs := []domain.MetalTransaction{
		newTxn(0, ring()),
		newTxn(5101500, ring()),
		newTxn(9000000, ring()),
		newTxn(100, ring(), ring(), domain.LineItem{ItemName: "Bangle", Purity: "14K", Weight: domain.MustGrams("12.345"), RatePerGram: 412345, WastagePercent: decimal.RequireFromString("7.25"), Tax: 333}),
	}
	for _, in := range inputs {
		once, err := pricing.RecomputeTransaction(gold, in)
		require.NoError(t, err)
		twice, err := pricing.RecomputeTransaction(gold, once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestRecomputeTransaction_PaymentBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		advance   domain.Money
		status    domain.PaymentStatus
		remaining domain.Money
	}{
		{"advance equals total", 5101500, domain.PaymentPaid, 0},
		{"advance between zero and total", 100, domain.PaymentPartial, 5101400},
		{"no advance", 0, domain.PaymentPending, 5101500},
		{"overpaid", 5200000, domain.PaymentPaid, -98500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.RecomputeTransaction(gold, newTxn(tt.advance, ring()))
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.PaymentStatus)
			assert.Equal(t, tt.remaining, got.Remaining)
		})
	}
}

func TestRecomputeTransaction_Invalid(t *testing.T) {
	_, err := pricing.RecomputeTransaction(gold, newTxn(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	bad := newTxn(-1, ring())
	bad.TransactionType = "LEND"
	bad.PaymentMode = "BARTER"
	_, err = pricing.RecomputeTransaction(gold, bad)
	fields := map[string]bool{}
	for _, d := range apperrors.Details(err) {
		fields[d.Field] = true
	}
	assert.True(t, fields["transactionType"])
	assert.True(t, fields["advanceAmount"])
	assert.True(t, fields["paymentMode"])

	silver := newTxn(0, ring())
	silver.Metal = domain.Silver
	_, err = pricing.RecomputeTransaction(gold, silver)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
