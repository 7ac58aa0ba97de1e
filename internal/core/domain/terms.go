package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Canonical loan terms in days.
const (
	Term30Days = 30
	Term40Days = 40
	Term60Days = 60
)

// ErrInvalidTerm is returned when a loan term is not a positive number of days.
var ErrInvalidTerm = errors.New("loan term must be a positive number of days")

var (
	rate30      = decimal.New(5, -2)
	rate40      = decimal.New(10, -2)
	rateDefault = decimal.New(20, -2)
)

// LoanTerms are the commercial figures derived from a principal and a term.
type LoanTerms struct {
	Rate     decimal.Decimal `json:"rate"`
	Interest decimal.Decimal `json:"interest"`
	Total    decimal.Decimal `json:"total"`
	Daily    decimal.Decimal `json:"daily"`
}

// RateForTerm is a flat three-tier lookup: 40 days is 10%, 30 days is 5%,
// anything else falls in the 60-day tier at 20%.
func RateForTerm(termDays int) decimal.Decimal {
	switch termDays {
	case Term40Days:
		return rate40
	case Term30Days:
		return rate30
	default:
		return rateDefault
	}
}

// ComputeTerms derives interest, total payable and the daily installment.
// The installment is rounded up so the schedule never under-collects.
func ComputeTerms(principal decimal.Decimal, termDays int) (LoanTerms, error) {
	if termDays <= 0 {
		return LoanTerms{}, ErrInvalidTerm
	}
	rate := RateForTerm(termDays)
	interest := principal.Mul(rate)
	total := principal.Add(interest)
	return LoanTerms{
		Rate:     rate,
		Interest: interest,
		Total:    total,
		Daily:    total.Div(decimal.NewFromInt(int64(termDays))).Ceil(),
	}, nil
}

// NetProceeds is the cash handed to the borrower once fees are withheld.
func NetProceeds(principal, serviceFee, deliveryCharge decimal.Decimal) decimal.Decimal {
	return principal.Sub(serviceFee).Sub(deliveryCharge)
}
