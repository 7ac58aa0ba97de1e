package dto

import (
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddLedgerEntryRequest records a manual ledger entry. Amount is a magnitude;
// the sign comes from the type.
type AddLedgerEntryRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required"`
	Description string                 `json:"desc" binding:"required"`
	Amount      decimal.Decimal        `json:"amt" binding:"dnonzero"`
	Date        string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Category    string                 `json:"category"`
	LoanID      string                 `json:"loanId"`
}

// AddCapitalRequest records an internal capital injection.
type AddCapitalRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"dpositive"`
	Description string          `json:"desc"`
}

// ListLedgerParams defines the filters and pagination for listing ledger entries.
type ListLedgerParams struct {
	Type      string  `form:"type"`
	User      string  `form:"user"`
	LoanID    string  `form:"loanId"`
	Category  string  `form:"category"`
	From      string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerResponse is a page of ledger entries, newest first.
type ListLedgerResponse struct {
	Entries   []domain.Transaction `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}
