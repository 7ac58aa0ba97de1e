package repositories

import (
	"context"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// ListEntries retrieves entries matching the filter in insertion order.
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error)
}

// LedgerWriter appends entries. There is no update or delete.
type LedgerWriter interface {
	AppendEntry(ctx context.Context, entry domain.Transaction) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
