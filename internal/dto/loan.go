package dto

import (
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OriginateLoanRequest defines the data needed to disburse a new loan.
type OriginateLoanRequest struct {
	Name           string          `json:"name" binding:"required"`
	Area           string          `json:"area" binding:"required"`
	Principal      decimal.Decimal `json:"principal" binding:"dpositive"`
	Term           int             `json:"term" binding:"required,gt=0"`
	Address        string          `json:"address"`
	CellNumber     string          `json:"cellNumber"`
	ServiceFee     decimal.Decimal `json:"serviceFee" binding:"dnonnegative"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge" binding:"dnonnegative"`
	Collateral     string          `json:"collateral"`
	Notes          string          `json:"notes"`
	// Date is the origination date (YYYY-MM-DD); defaults to today.
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ApplyPaymentRequest defines a collection against a loan.
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dpositive"`
	Date   string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// RefinanceLoanRequest defines the successor loan's terms.
type RefinanceLoanRequest struct {
	Principal      decimal.Decimal `json:"principal" binding:"dpositive"`
	Term           int             `json:"term" binding:"required,gt=0"`
	ServiceFee     decimal.Decimal `json:"serviceFee" binding:"dnonnegative"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge" binding:"dnonnegative"`
}

// LoanResponse is a loan plus its derived schedule figures.
type LoanResponse struct {
	domain.Loan
	DueDate     time.Time       `json:"dueDate"`
	DaysLate    int             `json:"daysLate"`
	IsOverdue   bool            `json:"isOverdue"`
	NetProceeds decimal.Decimal `json:"netProceeds"`
}

// ToLoanResponse converts a domain.Loan to a LoanResponse as of today.
func ToLoanResponse(loan domain.Loan, today time.Time) LoanResponse {
	return LoanResponse{
		Loan:        loan,
		DueDate:     loan.DueDate(),
		DaysLate:    loan.DaysLate(today),
		IsOverdue:   loan.IsOverdue(today),
		NetProceeds: loan.NetProceeds(),
	}
}

// ToLoanResponses converts a slice of domain.Loan.
func ToLoanResponses(loans []domain.Loan, today time.Time) []LoanResponse {
	responses := make([]LoanResponse, len(loans))
	for i, loan := range loans {
		responses[i] = ToLoanResponse(loan, today)
	}
	return responses
}
