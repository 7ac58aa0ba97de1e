package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoan(id, name, area string, day time.Time) domain.Loan {
	return domain.Loan{
		LoanID:    id,
		Name:      name,
		Area:      area,
		Principal: decimal.NewFromInt(1000),
		Term:      60,
		Total:     decimal.NewFromInt(1200),
		Daily:     decimal.NewFromInt(20),
		Balance:   decimal.NewFromInt(1200),
		Status:    domain.LoanActive,
		Date:      day,
	}
}

func TestOpen_SeedsAdminAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "ledger.json")

	store, err := Open(path)
	require.NoError(t, err)

	collectors, err := store.Repositories().CollectorRepo.ListCollectors(context.Background())
	require.NoError(t, err)
	require.Len(t, collectors, 1)
	assert.Equal(t, domain.DefaultAdminName, collectors[0].Name)
	assert.True(t, collectors[0].IsAdmin())
	assert.Equal(t, domain.DefaultAdminArea, collectors[0].Area)
	assert.Equal(t, domain.DefaultAdminID, collectors[0].CollectorID)

	_, err = os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestOpen_ReloadsExistingState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	store, err := Open(path)
	require.NoError(t, err)
	repos := store.Repositories()
	require.NoError(t, repos.LoanRepo.SaveLoan(ctx, testLoan("L1", "Maria", "North", day)))
	require.NoError(t, repos.LedgerRepo.AppendEntry(ctx, domain.Transaction{
		TransactionID: "T1", SimpleDate: day, Type: domain.Disbursement,
		Description: "Loan: Maria", Amount: decimal.NewFromInt(-1000), LoanID: "L1",
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	loan, err := reopened.Repositories().LoanRepo.FindLoanByID(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "Maria", loan.Name)
	assert.True(t, loan.Balance.Equal(decimal.NewFromInt(1200)))

	entries, err := reopened.Repositories().LedgerRepo.ListEntries(ctx, domain.LedgerFilter{LoanID: "L1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(-1000)))

	collectors, err := reopened.Repositories().CollectorRepo.ListCollectors(ctx)
	require.NoError(t, err)
	assert.Len(t, collectors, 1, "admin must not be seeded twice")
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestLoanRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory().Repositories().LoanRepo
	d1 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveLoan(ctx, testLoan("L1", "Maria Cruz", "North", d1)))
	require.NoError(t, repo.SaveLoan(ctx, testLoan("L2", "Jose", "South", d2)))

	err := repo.SaveLoan(ctx, testLoan("L1", "Dup", "North", d1))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	all, err := repo.ListLoans(ctx, domain.LoanFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "L2", all[0].LoanID, "oldest first")

	byName, err := repo.ListLoans(ctx, domain.LoanFilter{Name: "maria"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "L1", byName[0].LoanID)

	loan := all[1]
	loan.Balance = decimal.Zero
	loan.Status = domain.LoanPaid
	require.NoError(t, repo.UpdateLoan(ctx, loan))
	paid, err := repo.ListLoans(ctx, domain.LoanFilter{Status: domain.LoanPaid})
	require.NoError(t, err)
	assert.Len(t, paid, 1)

	require.NoError(t, repo.DeleteLoan(ctx, "L1"))
	_, err = repo.FindLoanByID(ctx, "L1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteLoan(ctx, "L1"), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateLoan(ctx, loan), apperrors.ErrNotFound)
}

func TestAttendanceUpsertKeepsID(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory().Repositories().AttendanceRepo
	day := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	first, err := repo.UpsertAttendance(ctx, domain.Attendance{AttendanceID: "A1", Date: day, EmployeeID: "E1", Status: domain.Present})
	require.NoError(t, err)
	second, err := repo.UpsertAttendance(ctx, domain.Attendance{AttendanceID: "A2", Date: day, EmployeeID: "E1", Status: domain.Absent})
	require.NoError(t, err)
	assert.Equal(t, first.AttendanceID, second.AttendanceID)

	records, err := repo.ListAttendance(ctx, domain.AttendanceFilter{EmployeeID: "E1", Month: "2024-05"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.Absent, records[0].Status)

	none, err := repo.ListAttendance(ctx, domain.AttendanceFilter{Month: "2024-06"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSavePayrollRecordsOncePerMonth(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory().Repositories().PayrollRepo

	march := []domain.PayrollRecord{{RecordID: "P1", Month: "2024-03", EmployeeID: "E1", NetPay: decimal.NewFromInt(1000)}}
	require.NoError(t, repo.SavePayrollRecords(ctx, march))

	again := []domain.PayrollRecord{{RecordID: "P2", Month: "2024-03", EmployeeID: "E1", NetPay: decimal.NewFromInt(1000)}}
	err := repo.SavePayrollRecords(ctx, again)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyProcessed)

	april := []domain.PayrollRecord{{RecordID: "P3", Month: "2024-04", EmployeeID: "E1", NetPay: decimal.NewFromInt(500)}}
	require.NoError(t, repo.SavePayrollRecords(ctx, april))

	records, err := repo.ListPayrollRecords(ctx, "2024-03")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "P1", records[0].RecordID)
}

func TestAuditLogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory().Repositories().AuditRepo
	for _, d := range []string{"first", "second", "third"} {
		require.NoError(t, repo.AppendAuditLog(ctx, domain.AuditLog{Details: d}))
	}

	logs, err := repo.ListAuditLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "third", logs[0].Details)
	assert.Equal(t, "second", logs[1].Details)

	all, err := repo.ListAuditLogs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImportSnapshotCopiesCollections(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	repos := NewInMemory().Repositories()

	loans := make([]domain.Loan, 1, 4)
	loans[0] = testLoan("L1", "Maria", "North", day)
	entries := make([]domain.Transaction, 1, 4)
	entries[0] = domain.Transaction{TransactionID: "T1", SimpleDate: day, Type: domain.Capital, Amount: decimal.NewFromInt(5000)}
	require.NoError(t, repos.SnapshotRepo.ImportSnapshot(ctx, domain.Snapshot{Loans: loans, Transactions: entries}))

	updated := loans[0]
	updated.Balance = decimal.NewFromInt(600)
	require.NoError(t, repos.LoanRepo.UpdateLoan(ctx, updated))
	require.NoError(t, repos.LedgerRepo.AppendEntry(ctx, domain.Transaction{TransactionID: "T2", SimpleDate: day, Type: domain.Expense, Amount: decimal.NewFromInt(-50)}))

	assert.True(t, loans[0].Balance.Equal(decimal.NewFromInt(1200)), "store writes must not reach the imported slice")
	assert.Empty(t, entries[:2][1].TransactionID, "appends must not land in the imported slice's spare capacity")

	// Changing the caller's data after import leaves the store alone.
	loans[0].Name = "Changed"
	stored, err := repos.LoanRepo.FindLoanByID(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "Maria", stored.Name)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(600)))
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	source := NewInMemory().Repositories()
	require.NoError(t, source.LoanRepo.SaveLoan(ctx, testLoan("L1", "Maria", "North", day)))
	require.NoError(t, source.LedgerRepo.AppendEntry(ctx, domain.Transaction{TransactionID: "T1", SimpleDate: day, Type: domain.Capital, Amount: decimal.NewFromInt(5000)}))

	snap, err := source.SnapshotRepo.ExportSnapshot(ctx)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, WriteSnapshotFile(path, snap))
	restored, err := ReadSnapshotFile(path)
	require.NoError(t, err)

	target := NewInMemory().Repositories()
	require.NoError(t, target.SnapshotRepo.ImportSnapshot(ctx, *restored))

	loans, err := target.LoanRepo.ListLoans(ctx, domain.LoanFilter{})
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "L1", loans[0].LoanID)
	assert.True(t, loans[0].Total.Equal(decimal.NewFromInt(1200)))

	entries, err := target.LedgerRepo.ListEntries(ctx, domain.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	collectors, err := target.CollectorRepo.ListCollectors(ctx)
	require.NoError(t, err)
	require.Len(t, collectors, 1)
	assert.Equal(t, snap.Collectors[0].CollectorID, collectors[0].CollectorID)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewInMemory().Repositories().LoanRepo.ListLoans(ctx, domain.LoanFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}
