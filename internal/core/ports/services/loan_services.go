package services

import (
	"context"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/SscSPs/microlend_ledger/internal/dto"
)

// LoanReaderSvc defines read operations for loan data
type LoanReaderSvc interface {
	// GetLoanByID retrieves a specific loan by its ID.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoans retrieves loans matching the filter.
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
}

// LoanLifecycleSvc drives a loan through origination, payment, refinancing and removal.
type LoanLifecycleSvc interface {
	// OriginateLoan disburses a new loan and books the disbursement and any fees.
	OriginateLoan(ctx context.Context, req dto.OriginateLoanRequest, actor string) (*domain.Loan, error)

	// ApplyPayment collects against a loan's balance.
	ApplyPayment(ctx context.Context, loanID string, req dto.ApplyPaymentRequest, actor string) (*domain.PaymentResult, error)

	// RefinanceLoan closes a loan and opens its successor.
	RefinanceLoan(ctx context.Context, loanID string, req dto.RefinanceLoanRequest, actor string) (*domain.RefinanceResult, error)

	// DeleteLoan removes a loan without reconciling its ledger entries.
	DeleteLoan(ctx context.Context, loanID string, actor string) error
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanLifecycleSvc
}
