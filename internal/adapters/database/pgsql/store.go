package pgsql

import (
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/microlend_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL backend.
type Store struct {
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
}

var _ portsrepo.Store = (*Store)(nil)

// NewStore wraps an open pool. The schema must already be migrated.
func NewStore(dbPool *pgxpool.Pool) *Store {
	return &Store{pool: dbPool, repos: NewRepositoryProvider(dbPool)}
}

// NewRepositoryProvider builds every repository on the same pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}
	return portsrepo.RepositoryProvider{
		LoanRepo:       &PgxLoanRepository{base},
		LedgerRepo:     &PgxLedgerRepository{base},
		CollectorRepo:  &PgxCollectorRepository{base},
		AttendanceRepo: &PgxAttendanceRepository{base},
		PayrollRepo:    &PgxPayrollRepository{base},
		InvestorRepo:   &PgxInvestorRepository{base},
		TaskRepo:       &PgxTaskRepository{base},
		AssetRepo:      &PgxAssetRepository{base},
		AuditRepo:      &PgxAuditRepository{base},
		SnapshotRepo:   &PgxSnapshotRepository{base},
	}
}

func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return s.repos
}

func (s *Store) Close() error {
	database.ClosePgxPool(s.pool)
	return nil
}
