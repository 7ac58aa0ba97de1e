package filestore

import (
	"context"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
)

type ledgerRepository struct {
	store *Store
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

func (r *ledgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error) {
	entries := []domain.Transaction{}
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		for _, t := range snap.Transactions {
			if filter.Matches(t) {
				entries = append(entries, t)
			}
		}
		return nil
	})
	return entries, err
}

func (r *ledgerRepository) AppendEntry(ctx context.Context, entry domain.Transaction) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		snap.Transactions = append(snap.Transactions, entry)
		return nil
	})
}
