package domain_test

import (
	"testing"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTerms(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		term      int
		rate      string
		interest  string
		total     string
		daily     string
	}{
		{"sixty day tier", "1000", 60, "0.20", "200", "1200", "20"},
		{"forty day tier rounds daily up", "1000", 40, "0.10", "100", "1100", "28"},
		{"thirty day tier", "1000", 30, "0.05", "50", "1050", "35"},
		{"unknown term uses default tier", "500", 45, "0.20", "100", "600", "14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ComputeTerms(dec(tt.principal), tt.term)
			require.NoError(t, err)
			assert.True(t, dec(tt.rate).Equal(got.Rate), "rate: got %s", got.Rate)
			assert.True(t, dec(tt.interest).Equal(got.Interest), "interest: got %s", got.Interest)
			assert.True(t, dec(tt.total).Equal(got.Total), "total: got %s", got.Total)
			assert.True(t, dec(tt.daily).Equal(got.Daily), "daily: got %s", got.Daily)
		})
	}
}

func TestComputeTerms_InvalidTerm(t *testing.T) {
	_, err := domain.ComputeTerms(dec("1000"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)
}

func TestNetProceeds(t *testing.T) {
	got := domain.NetProceeds(dec("5000"), dec("150"), dec("50"))
	assert.True(t, dec("4800").Equal(got))
}
