package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount of rupees held as an integer count of paise.
type Money int64

const minorUnitExponent = 2

// MoneyFromMajor converts rupees to paise, rounding half away from zero to the nearest paisa.
func MoneyFromMajor(major decimal.Decimal) Money {
	return Money(major.Shift(minorUnitExponent).Round(0).IntPart())
}

// RoundToMoney rounds an amount already expressed in paise (possibly fractional) to whole paise.
func RoundToMoney(minor decimal.Decimal) Money {
	return Money(minor.Round(0).IntPart())
}

// Minor returns the paise count.
func (m Money) Minor() int64 { return int64(m) }

// Major returns the amount in rupees with two decimal places.
func (m Money) Major() decimal.Decimal {
	return decimal.New(int64(m), -minorUnitExponent)
}

// Decimal returns the paise count as a decimal for further arithmetic.
func (m Money) Decimal() decimal.Decimal { return decimal.NewFromInt(int64(m)) }

func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsNegative() bool { return m < 0 }
func (m Money) IsPositive() bool { return m > 0 }

func (m Money) String() string { return m.Major().StringFixed(minorUnitExponent) }

// Grams is a metal weight in grams.
type Grams struct {
	value decimal.Decimal
}

// ZeroGrams is the zero weight.
var ZeroGrams = Grams{}

func NewGrams(d decimal.Decimal) Grams { return Grams{value: d} }

// GramsFromString parses a decimal gram value such as "10.125".
func GramsFromString(s string) (Grams, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Grams{}, fmt.Errorf("invalid weight %q: %w", s, err)
	}
	return Grams{value: d}, nil
}

// MustGrams is GramsFromString for literals known to be valid.
func MustGrams(s string) Grams {
	g, err := GramsFromString(s)
	if err != nil {
		panic(err)
	}
	return g
}

func (g Grams) Decimal() decimal.Decimal { return g.value }
func (g Grams) Add(o Grams) Grams        { return Grams{value: g.value.Add(o.value)} }
func (g Grams) IsZero() bool             { return g.value.IsZero() }
func (g Grams) IsPositive() bool         { return g.value.IsPositive() }
func (g Grams) IsNegative() bool         { return g.value.IsNegative() }
func (g Grams) Equal(o Grams) bool       { return g.value.Equal(o.value) }
func (g Grams) String() string           { return g.value.String() }

func (g Grams) MarshalJSON() ([]byte, error) { return g.value.MarshalJSON() }

func (g *Grams) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	g.value = d
	return nil
}

// Scan implements sql.Scanner so pgx can read NUMERIC columns directly.
func (g *Grams) Scan(src any) error {
	return g.value.Scan(src)
}

// Value implements driver.Valuer.
func (g Grams) Value() (driver.Value, error) {
	return g.value.Value()
}
