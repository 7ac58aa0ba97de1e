package filestore

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
)

type loanRepository struct {
	store *Store
}

var _ portsrepo.LoanRepositoryFacade = (*loanRepository)(nil)

func loanIndex(snap *domain.Snapshot, loanID string) int {
	return indexOf(snap.Loans, func(l domain.Loan) bool { return l.LoanID == loanID })
}

func (r *loanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	var loan domain.Loan
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		i := loanIndex(snap, loanID)
		if i < 0 {
			return apperrors.NotFoundf("loan %s", loanID)
		}
		loan = snap.Loans[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	loans := []domain.Loan{}
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		for _, l := range snap.Loans {
			if filter.Matches(l) {
				loans = append(loans, l)
			}
		}
		return nil
	})
	sort.SliceStable(loans, func(i, j int) bool { return loans[i].Date.Before(loans[j].Date) })
	return loans, err
}

func (r *loanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		if loanIndex(snap, loan.LoanID) >= 0 {
			return fmt.Errorf("%w: loan %s", apperrors.ErrDuplicate, loan.LoanID)
		}
		snap.Loans = append(snap.Loans, loan)
		return nil
	})
}

func (r *loanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		i := loanIndex(snap, loan.LoanID)
		if i < 0 {
			return apperrors.NotFoundf("loan %s", loan.LoanID)
		}
		snap.Loans[i] = loan
		return nil
	})
}

func (r *loanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		i := loanIndex(snap, loanID)
		if i < 0 {
			return apperrors.NotFoundf("loan %s", loanID)
		}
		snap.Loans = append(snap.Loans[:i], snap.Loans[i+1:]...)
		return nil
	})
}
