package dto

import "github.com/shopspring/decimal"

// AddInvestorRequest registers an investor and books their capital.
type AddInvestorRequest struct {
	Name            string          `json:"name" binding:"required"`
	CapitalInvested decimal.Decimal `json:"capitalInvested" binding:"dpositive"`
	DividendRate    decimal.Decimal `json:"dividendRate" binding:"dnonnegative"`
	DateJoined      string          `json:"dateJoined" binding:"omitempty,datetime=2006-01-02"`
}

// PayDividendRequest pays an investor. A nil amount pays the default dividend.
type PayDividendRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}
