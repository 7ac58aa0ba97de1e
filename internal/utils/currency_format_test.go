package utils_test

import (
	"testing"

	"github.com/SscSPs/microlend_ledger/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "₱0.00"},
		{"small", decimal.NewFromInt(35), "₱35.00"},
		{"thousands", decimal.RequireFromString("1234.5"), "₱1,234.50"},
		{"millions", decimal.RequireFromString("1234567.456"), "₱1,234,567.46"},
		{"exact group", decimal.NewFromInt(100000), "₱100,000.00"},
		{"negative", decimal.NewFromInt(-1200), "-₱1,200.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatMoney(tt.amount, utils.DefaultCurrencySymbol))
		})
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "27.50", utils.FormatWithPrecision(decimal.RequireFromString("27.5"), 2))
	assert.Equal(t, "28", utils.FormatWithPrecision(decimal.RequireFromString("27.5"), 0))
}
