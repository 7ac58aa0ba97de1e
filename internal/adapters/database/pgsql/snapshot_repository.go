package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

// ExportSnapshot reads every table.
func (r *PgxSnapshotRepository) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	repos := NewRepositoryProvider(r.Pool)
	var (
		snap domain.Snapshot
		err  error
	)
	if snap.Collectors, err = repos.CollectorRepo.ListCollectors(ctx); err != nil {
		return nil, err
	}
	if snap.Loans, err = repos.LoanRepo.ListLoans(ctx, domain.LoanFilter{}); err != nil {
		return nil, err
	}
	if snap.Transactions, err = repos.LedgerRepo.ListEntries(ctx, domain.LedgerFilter{}); err != nil {
		return nil, err
	}
	if snap.Attendance, err = repos.AttendanceRepo.ListAttendance(ctx, domain.AttendanceFilter{}); err != nil {
		return nil, err
	}
	if snap.PayrollRecords, err = repos.PayrollRepo.ListPayrollRecords(ctx, ""); err != nil {
		return nil, err
	}
	if snap.Investors, err = repos.InvestorRepo.ListInvestors(ctx); err != nil {
		return nil, err
	}
	if snap.Tasks, err = repos.TaskRepo.ListTasks(ctx); err != nil {
		return nil, err
	}
	if snap.Assets, err = repos.AssetRepo.ListAssets(ctx); err != nil {
		return nil, err
	}
	logs, err := repos.AuditRepo.ListAuditLogs(ctx, 0)
	if err != nil {
		return nil, err
	}
	// stored oldest first, like the ledger
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	snap.AuditLogs = logs
	snap.Normalize()
	return &snap, nil
}

// ImportSnapshot truncates every table and reloads it inside one transaction.
func (r *PgxSnapshotRepository) ImportSnapshot(ctx context.Context, snap domain.Snapshot) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	if _, err := tx.Exec(ctx, `TRUNCATE collectors, loans, transactions, attendance, payroll_records,
		investors, tasks, assets, audit_logs RESTART IDENTITY;`); err != nil {
		return fmt.Errorf("failed to clear tables: %w", err)
	}

	for _, c := range snap.Collectors {
		if err := upsertCollector(ctx, tx, c); err != nil {
			return err
		}
	}
	for _, l := range snap.Loans {
		if err := insertLoan(ctx, tx, l); err != nil {
			return err
		}
	}
	for _, a := range snap.Attendance {
		if _, err := upsertAttendance(ctx, tx, a); err != nil {
			return err
		}
	}
	for _, p := range snap.PayrollRecords {
		if err := insertPayrollRecord(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, i := range snap.Investors {
		if err := insertInvestor(ctx, tx, i); err != nil {
			return err
		}
	}
	for _, t := range snap.Tasks {
		if err := insertTask(ctx, tx, t); err != nil {
			return err
		}
	}
	for _, a := range snap.Assets {
		if err := insertAsset(ctx, tx, a); err != nil {
			return err
		}
	}

	// Ledger and audit rows are queued in order so seq matches the snapshot.
	batch := &pgx.Batch{}
	for _, t := range snap.Transactions {
		batch.Queue(`INSERT INTO transactions (`+transactionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			t.TransactionID, t.Timestamp, t.SimpleDate, t.Type, t.Description, t.Amount, t.User, t.Category, t.LoanID)
	}
	for _, e := range snap.AuditLogs {
		batch.Queue(`INSERT INTO audit_logs (audit_id, ts, user_name, action, details) VALUES ($1, $2, $3, $4, $5);`,
			e.AuditID, e.Timestamp, e.User, e.Action, e.Details)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to restore ledger and audit rows: %w", err)
	}

	return r.Commit(ctx, tx)
}
