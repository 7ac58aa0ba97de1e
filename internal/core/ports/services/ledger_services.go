package services

import (
	"context"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for the ledger
type LedgerReaderSvc interface {
	// ListEntries returns a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error)
}

// LedgerWriterSvc appends manual entries.
type LedgerWriterSvc interface {
	// AddEntry records an expense, capital, dividend or other manual entry.
	AddEntry(ctx context.Context, req dto.AddLedgerEntryRequest, actor string) (*domain.Transaction, error)

	// AddCapital records an internal capital injection.
	AddCapital(ctx context.Context, amount decimal.Decimal, description string, actor string) (*domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
