package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromMajor(t *testing.T) {
	tests := []struct {
		name  string
		major string
		want  domain.Money
	}{
		{"whole rupees", "6000", 600000},
		{"paise", "12.34", 1234},
		{"half paisa rounds up", "0.005", 1},
		{"below half rounds down", "0.0049", 0},
		{"zero", "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.MoneyFromMajor(decimal.RequireFromString(tt.major))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_Major(t *testing.T) {
	m := domain.Money(5101500)
	assert.True(t, m.Major().Equal(decimal.RequireFromString("51015")))
	assert.Equal(t, "51015.00", m.String())
	assert.Equal(t, "-0.50", domain.Money(-50).String())
}

func TestGrams_JSON(t *testing.T) {
	var g domain.Grams
	require.NoError(t, json.Unmarshal([]byte(`"10.125"`), &g))
	assert.Equal(t, "10.125", g.String())

	require.NoError(t, json.Unmarshal([]byte(`2.5`), &g))
	assert.True(t, g.Equal(domain.MustGrams("2.5")))

	out, err := json.Marshal(domain.MustGrams("3.75"))
	require.NoError(t, err)
	assert.Equal(t, `"3.75"`, string(out))

	_, err = domain.GramsFromString("abc")
	assert.Error(t, err)
}

func TestGrams_Add(t *testing.T) {
	total := domain.ZeroGrams.Add(domain.MustGrams("1.1")).Add(domain.MustGrams("2.2"))
	assert.True(t, total.Equal(domain.MustGrams("3.3")))
	assert.True(t, total.IsPositive())
	assert.True(t, domain.ZeroGrams.IsZero())
}
