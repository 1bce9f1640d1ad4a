package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Metal identifies the precious metal a transaction deals in.
type Metal string

const (
	Gold   Metal = "GOLD"
	Silver Metal = "SILVER"
)

// Purity is a metal-specific fineness grade.
type Purity string

// TransactionType is the direction of a metal transaction from the shop's point of view.
type TransactionType string

const (
	Buy  TransactionType = "BUY"
	Sell TransactionType = "SELL"
)

func (t TransactionType) IsValid() bool { return t == Buy || t == Sell }

// MetalProfile parameterises the transaction engine per metal.
type MetalProfile struct {
	Metal      Metal
	Purities   []Purity // ordered finest first
	BuyPrefix  string
	SellPrefix string
	fineness   map[Purity]decimal.Decimal
}

var karat = decimal.NewFromInt(24)
var perMille = decimal.NewFromInt(1000)

func goldProfile() MetalProfile {
	purities := []Purity{"24K", "22K", "20K", "18K", "16K", "14K", "12K", "10K"}
	fineness := make(map[Purity]decimal.Decimal, len(purities))
	for _, p := range purities {
		k, _ := decimal.NewFromString(strings.TrimSuffix(string(p), "K"))
		fineness[p] = k.Div(karat)
	}
	return MetalProfile{Metal: Gold, Purities: purities, BuyPrefix: "GB", SellPrefix: "GS", fineness: fineness}
}

func silverProfile() MetalProfile {
	purities := []Purity{"999", "925", "900", "800"}
	fineness := make(map[Purity]decimal.Decimal, len(purities))
	for _, p := range purities {
		n, _ := decimal.NewFromString(string(p))
		fineness[p] = n.Div(perMille)
	}
	return MetalProfile{Metal: Silver, Purities: purities, BuyPrefix: "SB", SellPrefix: "SS", fineness: fineness}
}

var metalProfiles = map[Metal]MetalProfile{
	Gold:   goldProfile(),
	Silver: silverProfile(),
}

// Metals lists the supported metals in a stable order.
func Metals() []Metal { return []Metal{Gold, Silver} }

// ParseMetal accepts "gold"/"GOLD"/"silver"/"SILVER".
func ParseMetal(s string) (Metal, error) {
	m := Metal(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := metalProfiles[m]; !ok {
		return "", fmt.Errorf("unsupported metal %q", s)
	}
	return m, nil
}

// ProfileFor returns the profile for a supported metal.
func ProfileFor(m Metal) (MetalProfile, error) {
	p, ok := metalProfiles[m]
	if !ok {
		return MetalProfile{}, fmt.Errorf("unsupported metal %q", m)
	}
	return p, nil
}

// MustProfile is ProfileFor for metals known to be valid.
func MustProfile(m Metal) MetalProfile {
	p, err := ProfileFor(m)
	if err != nil {
		panic(err)
	}
	return p
}

// Slug is the lowercase name used in routes and ledger descriptions.
func (m Metal) Slug() string { return strings.ToLower(string(m)) }

// Title is the metal's display name.
func (m Metal) Title() string {
	s := m.Slug()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (p MetalProfile) SupportsPurity(purity Purity) bool {
	_, ok := p.fineness[purity]
	return ok
}

// InvoicePrefix returns the two letter invoice prefix for a direction.
func (p MetalProfile) InvoicePrefix(t TransactionType) string {
	if t == Sell {
		return p.SellPrefix
	}
	return p.BuyPrefix
}

// ReferencePurity is the finest grade, the one price sources usually quote.
func (p MetalProfile) ReferencePurity() Purity { return p.Purities[0] }

// DeriveRate scales a reference-grade rate to another purity by fineness.
func (p MetalProfile) DeriveRate(referenceRate Money, purity Purity) (Money, bool) {
	target, ok := p.fineness[purity]
	if !ok {
		return 0, false
	}
	ref := p.fineness[p.ReferencePurity()]
	return RoundToMoney(referenceRate.Decimal().Mul(target).Div(ref)), true
}

// PurityNames returns the purities as strings, for error messages.
func (p MetalProfile) PurityNames() []string {
	names := make([]string, len(p.Purities))
	for i, pu := range p.Purities {
		names[i] = string(pu)
	}
	return names
}
