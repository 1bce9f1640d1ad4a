package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetal(t *testing.T) {
	m, err := domain.ParseMetal("gold")
	require.NoError(t, err)
	assert.Equal(t, domain.Gold, m)

	m, err = domain.ParseMetal(" SILVER ")
	require.NoError(t, err)
	assert.Equal(t, domain.Silver, m)

	_, err = domain.ParseMetal("platinum")
	assert.Error(t, err)
}

func TestMetalProfile_Purities(t *testing.T) {
	gold := domain.MustProfile(domain.Gold)
	for _, p := range []domain.Purity{"24K", "22K", "20K", "18K", "16K", "14K", "12K", "10K"} {
		assert.True(t, gold.SupportsPurity(p), p)
	}
	assert.False(t, gold.SupportsPurity("925"))
	assert.Equal(t, "GB", gold.InvoicePrefix(domain.Buy))
	assert.Equal(t, "GS", gold.InvoicePrefix(domain.Sell))

	silver := domain.MustProfile(domain.Silver)
	for _, p := range []domain.Purity{"800", "900", "925", "999"} {
		assert.True(t, silver.SupportsPurity(p), p)
	}
	assert.False(t, silver.SupportsPurity("22K"))
	assert.Equal(t, "SB", silver.InvoicePrefix(domain.Buy))
	assert.Equal(t, "SS", silver.InvoicePrefix(domain.Sell))
}

func TestMetalProfile_DeriveRate(t *testing.T) {
	gold := domain.MustProfile(domain.Gold)
	rate, ok := gold.DeriveRate(720000, "18K")
	require.True(t, ok)
	assert.Equal(t, domain.Money(540000), rate)

	rate, ok = gold.DeriveRate(720000, "22K")
	require.True(t, ok)
	assert.Equal(t, domain.Money(660000), rate)

	_, ok = gold.DeriveRate(720000, "925")
	assert.False(t, ok)

	silver := domain.MustProfile(domain.Silver)
	rate, ok = silver.DeriveRate(9990, "925")
	require.True(t, ok)
	assert.Equal(t, domain.Money(9250), rate)
}

func TestFormatInvoiceNumber(t *testing.T) {
	at := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "GS250300001", domain.FormatInvoiceNumber("GS", at, 1))
	assert.Equal(t, "SB250312345", domain.FormatInvoiceNumber("SB", at, 12345))
	assert.Equal(t, "2503", domain.InvoicePeriod(at))
}

func TestLedgerClassification(t *testing.T) {
	dir, cat := domain.LedgerClassification(domain.Sell)
	assert.Equal(t, domain.DirectionIn, dir)
	assert.Equal(t, domain.CategoryIncome, cat)

	dir, cat = domain.LedgerClassification(domain.Buy)
	assert.Equal(t, domain.DirectionOut, dir)
	assert.Equal(t, domain.CategoryExpense, cat)
}

func TestCounterparty_SameIdentity(t *testing.T) {
	id1, id2 := "c1", "c2"
	a := &domain.Counterparty{Role: domain.RoleCustomer, CustomerID: &id1, DisplayName: "Asha"}
	b := &domain.Counterparty{Role: domain.RoleCustomer, CustomerID: &id1, DisplayName: "Asha R"}
	c := &domain.Counterparty{Role: domain.RoleCustomer, CustomerID: &id2}

	assert.True(t, a.SameIdentity(b))
	assert.False(t, a.SameIdentity(c))
	assert.False(t, a.SameIdentity(nil))
	var none *domain.Counterparty
	assert.True(t, none.SameIdentity(nil))
	assert.Equal(t, domain.WalkInCustomer, none.Name())
	assert.Equal(t, "Asha", a.Name())
}

func TestMarketRates_FillDerivedRates(t *testing.T) {
	rates := &domain.MarketRates{
		Rates: map[domain.Metal]map[domain.Purity]domain.Money{
			domain.Gold: {"24K": 720000, "22K": 661000},
		},
		Source: "test",
	}
	rates.FillDerivedRates()

	gold := rates.Rates[domain.Gold]
	assert.Equal(t, domain.Money(661000), gold["22K"], "quoted rates are kept")
	assert.Equal(t, domain.Money(540000), gold["18K"])
	assert.Len(t, gold, 8)

	snap, ok := rates.SnapshotFor(domain.Gold)
	require.True(t, ok)
	assert.Equal(t, "test", snap.Source)
	_, ok = rates.SnapshotFor(domain.Silver)
	assert.False(t, ok)
}
