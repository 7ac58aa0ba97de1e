package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Investor is an external source of capital.
type Investor struct {
	InvestorID      string          `json:"id"`
	Name            string          `json:"name"`
	CapitalInvested decimal.Decimal `json:"capitalInvested"`
	DividendRate    decimal.Decimal `json:"dividendRate"` // percent
	TotalPayouts    decimal.Decimal `json:"totalPayouts"`
	DateJoined      time.Time       `json:"dateJoined"`
	AuditFields
}

// DefaultDividend is capital × rate / 100.
func (i Investor) DefaultDividend() decimal.Decimal {
	return i.CapitalInvested.Mul(i.DividendRate).Div(hundred).Round(2)
}
