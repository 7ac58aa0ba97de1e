package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, ts, simple_date, type, description, amount, user_name, category, loan_id`

func scanTransaction(row scanner) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.TransactionID, &t.Timestamp, &t.SimpleDate, &t.Type, &t.Description,
		&t.Amount, &t.User, &t.Category, &t.LoanID)
	return t, err
}

func insertTransaction(ctx context.Context, q querier, t domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := q.Exec(ctx, query, t.TransactionID, t.Timestamp, t.SimpleDate, t.Type, t.Description,
		t.Amount, t.User, t.Category, t.LoanID)
	if err != nil {
		return mapWriteError(err, "transaction", t.TransactionID)
	}
	return nil
}

// AppendEntry inserts a ledger entry.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.Transaction) error {
	return insertTransaction(ctx, r.Pool, entry)
}

// nullableDate maps a zero filter bound to NULL.
func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// ListEntries retrieves entries in insertion order.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR user_name = $2)
		  AND ($3 = '' OR loan_id = $3)
		  AND ($4 = '' OR category = $4)
		  AND ($5::date IS NULL OR simple_date >= $5::date)
		  AND ($6::date IS NULL OR simple_date <= $6::date)
		ORDER BY seq;`
	rows, err := r.Pool.Query(ctx, query,
		string(filter.Type), filter.User, filter.LoanID, filter.Category,
		nullableDate(filter.From), nullableDate(filter.To),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	entries := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return entries, nil
}
