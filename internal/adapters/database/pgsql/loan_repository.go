package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
)

type PgxLoanRepository struct {
	BaseRepository
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryFacade
var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, name, area, address, cell_number, principal, term, interest_rate, total, daily, balance, status,
	service_fee, delivery_charge, collateral, notes, loan_date, refinanced_from,
	created_at, created_by, last_updated_at, last_updated_by`

type scanner interface {
	Scan(dest ...any) error
}

func scanLoan(row scanner) (domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(
		&l.LoanID, &l.Name, &l.Area, &l.Address, &l.CellNumber,
		&l.Principal, &l.Term, &l.InterestRate, &l.Total, &l.Daily, &l.Balance, &l.Status,
		&l.ServiceFee, &l.DeliveryCharge, &l.Collateral, &l.Notes, &l.Date, &l.RefinancedFrom,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	)
	return l, err
}

func insertLoan(ctx context.Context, q querier, l domain.Loan) error {
	query := `INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);`
	_, err := q.Exec(ctx, query,
		l.LoanID, l.Name, l.Area, l.Address, l.CellNumber,
		l.Principal, l.Term, l.InterestRate, l.Total, l.Daily, l.Balance, l.Status,
		l.ServiceFee, l.DeliveryCharge, l.Collateral, l.Notes, l.Date, l.RefinancedFrom,
		l.CreatedAt, l.CreatedBy, l.LastUpdatedAt, l.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "loan", l.LoanID)
	}
	return nil
}

// SaveLoan inserts a new loan.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	return insertLoan(ctx, r.Pool, loan)
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	loan, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		return nil, mapReadError(err, "loan", loanID)
	}
	return &loan, nil
}

// ListLoans retrieves loans matching the filter, oldest first.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE ($1 = '' OR area = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%')
		ORDER BY loan_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, filter.Area, string(filter.Status), filter.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return loans, nil
}

// UpdateLoan overwrites the mutable columns of a loan.
func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, l domain.Loan) error {
	query := `
		UPDATE loans SET name = $2, area = $3, address = $4, cell_number = $5, balance = $6, status = $7,
			collateral = $8, notes = $9, last_updated_at = $10, last_updated_by = $11
		WHERE loan_id = $1;`
	tag, err := r.Pool.Exec(ctx, query,
		l.LoanID, l.Name, l.Area, l.Address, l.CellNumber, l.Balance, l.Status,
		l.Collateral, l.Notes, l.LastUpdatedAt, l.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", l.LoanID, err)
	}
	return expectOne(tag, "loan", l.LoanID)
}

// DeleteLoan removes a loan. Its ledger entries stay.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1;`, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}
	return expectOne(tag, "loan", loanID)
}
