package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditLabel is the tier a credit score falls in.
type CreditLabel string

const (
	CreditElite CreditLabel = "Elite"
	CreditGood  CreditLabel = "Good"
	CreditFair  CreditLabel = "Fair"
	CreditRisk  CreditLabel = "Risk"
)

// CreditScore is derived on demand and never stored.
type CreditScore struct {
	Score int         `json:"score"`
	Label CreditLabel `json:"label"`
}

const (
	creditBase         = 70
	creditProgressMax  = 20
	creditCurrentBonus = 5
	creditLatePerDay   = 2
	creditVolumeBonus  = 5
	creditMin          = 0
	creditMax          = 100
)

// ComputeCreditScore scores a loan from repayment progress, lateness and how
// many payments have been collected against it.
func ComputeCreditScore(loan Loan, paymentCount int, today time.Time) CreditScore {
	score := decimal.NewFromInt(creditBase)
	if loan.Total.IsPositive() {
		progress := decimal.NewFromInt(1).Sub(loan.Balance.Div(loan.Total))
		score = score.Add(progress.Mul(decimal.NewFromInt(creditProgressMax)))
	}

	if late := loan.DaysLate(today); late > 0 {
		score = score.Sub(decimal.NewFromInt(int64(creditLatePerDay * late)))
	} else {
		score = score.Add(decimal.NewFromInt(creditCurrentBonus))
	}

	if paymentCount > 5 {
		score = score.Add(decimal.NewFromInt(creditVolumeBonus))
	}
	if paymentCount > 10 {
		score = score.Add(decimal.NewFromInt(creditVolumeBonus))
	}

	value := int(score.Round(0).IntPart())
	value = max(creditMin, min(creditMax, value))
	return CreditScore{Score: value, Label: CreditLabelFor(value)}
}

// CreditLabelFor maps a score to its tier.
func CreditLabelFor(score int) CreditLabel {
	switch {
	case score >= 90:
		return CreditElite
	case score >= 70:
		return CreditGood
	case score >= 50:
		return CreditFair
	default:
		return CreditRisk
	}
}

// CountPayments counts collections recorded against a loan, ignoring fee income.
func CountPayments(entries []Transaction, loanID string) int {
	n := 0
	for _, e := range entries {
		if e.IsPaymentFor(loanID) {
			n++
		}
	}
	return n
}

// LoanStanding is the read-side view of a single loan's health.
type LoanStanding struct {
	Loan         Loan            `json:"loan"`
	DueDate      time.Time       `json:"dueDate"`
	DaysLate     int             `json:"daysLate"`
	IsOverdue    bool            `json:"isOverdue"`
	PaymentCount int             `json:"paymentCount"`
	Credit       CreditScore     `json:"credit"`
	NetProceeds  decimal.Decimal `json:"netProceeds"`
	Payments     []Transaction   `json:"payments"`
}
