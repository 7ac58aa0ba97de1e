package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan. Paid is terminal.
type LoanStatus string

const (
	LoanActive LoanStatus = "Active"
	LoanPaid   LoanStatus = "Paid"
)

// DefaultCollateral is recorded when a borrower pledges nothing.
const DefaultCollateral = "Unsecured"

// PaymentTolerance absorbs rounding left over by the ceiled daily installment.
// A balance at or below it counts as fully paid.
var PaymentTolerance = decimal.New(5, -1)

// Loan represents one lending contract.
type Loan struct {
	LoanID         string          `json:"id"`
	Name           string          `json:"name"`
	Area           string          `json:"area"`
	Address        string          `json:"address,omitempty"`
	CellNumber     string          `json:"cellNumber,omitempty"`
	Principal      decimal.Decimal `json:"principal"`
	Term           int             `json:"term"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	Total          decimal.Decimal `json:"total"`
	Daily          decimal.Decimal `json:"daily"`
	Balance        decimal.Decimal `json:"balance"`
	Status         LoanStatus      `json:"status"`
	ServiceFee     decimal.Decimal `json:"serviceFee"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	Collateral     string          `json:"collateral"`
	Notes          string          `json:"notes,omitempty"`
	Date           time.Time       `json:"date"`
	RefinancedFrom string          `json:"refinancedFrom,omitempty"`
	AuditFields
}

// IsActive reports whether the loan still carries a balance.
func (l Loan) IsActive() bool {
	return l.Status == LoanActive
}

// DueDate is the origination date plus the term in calendar days.
func (l Loan) DueDate() time.Time {
	return dates.AddDays(l.Date, l.Term)
}

// DaysLate counts whole days past the due date. Paid loans are never late.
func (l Loan) DaysLate(today time.Time) int {
	if !l.IsActive() {
		return 0
	}
	late := dates.DaysBetween(l.DueDate(), today)
	if late < 0 {
		return 0
	}
	return late
}

// IsOverdue reports whether the loan is at least one day past due.
func (l Loan) IsOverdue(today time.Time) bool {
	return l.DaysLate(today) > 0
}

// Collected is what has been recovered so far.
func (l Loan) Collected() decimal.Decimal {
	return l.Total.Sub(l.Balance)
}

// NetProceeds is the cash disbursed after fees.
func (l Loan) NetProceeds() decimal.Decimal {
	return NetProceeds(l.Principal, l.ServiceFee, l.DeliveryCharge)
}

// ApplyPayment reduces the balance and returns how much it actually dropped.
// The payment is capped at balance + tolerance; a remaining balance within
// tolerance snaps to zero and closes the loan.
func (l *Loan) ApplyPayment(amount decimal.Decimal) decimal.Decimal {
	before := l.Balance
	pay := decimal.Min(amount, l.Balance.Add(PaymentTolerance))
	l.Balance = l.Balance.Sub(pay)
	if l.Balance.LessThanOrEqual(PaymentTolerance) {
		l.Close()
	}
	return before.Sub(l.Balance)
}

// Close forces the loan to a zero balance and the Paid state.
func (l *Loan) Close() {
	l.Balance = decimal.Zero
	l.Status = LoanPaid
}

// LoanFilter narrows a loan listing. Zero values match everything.
type LoanFilter struct {
	Area   string     `form:"area"`
	Status LoanStatus `form:"status"`
	Name   string     `form:"name"`
}

// Matches reports whether the loan satisfies the filter.
func (f LoanFilter) Matches(l Loan) bool {
	if f.Area != "" && l.Area != f.Area {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

// RefinanceResult describes both sides of a refinance.
type RefinanceResult struct {
	Closed         Loan            `json:"closed"`
	Opened         Loan            `json:"opened"`
	SettledBalance decimal.Decimal `json:"settledBalance"`
	NetProceeds    decimal.Decimal `json:"netProceeds"`
	// RequiresTopUp is set when the borrower owes cash at signing.
	RequiresTopUp bool `json:"requiresTopUp"`
}

// PaymentResult reports a payment application. Recorded is the amount written
// to the ledger; Applied is what actually reduced the balance.
type PaymentResult struct {
	Loan        Loan            `json:"loan"`
	Applied     decimal.Decimal `json:"applied"`
	Recorded    decimal.Decimal `json:"recorded"`
	Transaction Transaction     `json:"transaction"`
}
