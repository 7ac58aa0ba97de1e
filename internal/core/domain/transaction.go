package domain

import (
	"time"

	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	Collection   TransactionType = "Collection"
	Disbursement TransactionType = "Disbursement"
	Expense      TransactionType = "Expense"
	Capital      TransactionType = "Capital"
	Payroll      TransactionType = "Payroll"
	Dividend     TransactionType = "Dividend"
)

// Well-known ledger categories.
const (
	CategoryFee       = "Fee"
	CategoryRefinance = "Refinance"
)

// IsValid reports whether t is a known type.
func (t TransactionType) IsValid() bool {
	switch t {
	case Collection, Disbursement, Expense, Capital, Payroll, Dividend:
		return true
	}
	return false
}

// IsInflow reports whether entries of this type bring cash into the business.
func (t TransactionType) IsInflow() bool {
	return t == Collection || t == Capital
}

// Signed applies the type's direction to a magnitude.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t.IsInflow() {
		return amount.Abs()
	}
	return amount.Abs().Neg()
}

// Transaction is an immutable ledger entry. Amount is signed: positive is an
// inflow to the business, negative an outflow.
type Transaction struct {
	TransactionID string          `json:"id"`
	Timestamp     time.Time       `json:"date"`
	SimpleDate    time.Time       `json:"simpleDate"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"desc"`
	Amount        decimal.Decimal `json:"amt"`
	User          string          `json:"user"`
	Category      string          `json:"category,omitempty"`
	LoanID        string          `json:"loanId,omitempty"`
}

// IsPaymentFor reports whether the entry is a collection against the loan, not counting fees.
func (t Transaction) IsPaymentFor(loanID string) bool {
	return loanID != "" && t.LoanID == loanID && t.Type == Collection && t.Category != CategoryFee
}

// LedgerFilter narrows a ledger listing. Zero values match everything;
// From and To are inclusive calendar dates.
type LedgerFilter struct {
	Type     TransactionType
	User     string
	LoanID   string
	Category string
	From     time.Time
	To       time.Time
}

// Matches reports whether the entry satisfies the filter.
func (f LedgerFilter) Matches(t Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.User != "" && t.User != f.User {
		return false
	}
	if f.LoanID != "" && t.LoanID != f.LoanID {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	day := dates.Truncate(t.SimpleDate)
	if !f.From.IsZero() && day.Before(dates.Truncate(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(dates.Truncate(f.To)) {
		return false
	}
	return true
}
