package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
)

type loanRepository struct{ s *Store }

var _ portsrepo.LoanRepositoryFacade = (*loanRepository)(nil)

func (r *loanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return get[domain.Loan](ctx, r.s, LoansCollection, loanID)
}

func (r *loanRepository) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	q := r.s.client.Collection(LoansCollection).Query
	if filter.Area != "" {
		q = q.Where("area", "==", filter.Area)
	}
	if filter.Status != "" {
		q = q.Where("status", "==", string(filter.Status))
	}
	loans, err := list(ctx, q, filter.Matches)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(loans, func(i, j int) bool { return loans[i].Date.Before(loans[j].Date) })
	return loans, nil
}

func (r *loanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	return r.s.create(ctx, LoansCollection, loan.LoanID, loan)
}

func (r *loanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	return r.s.replace(ctx, LoansCollection, loan.LoanID, loan)
}

func (r *loanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	return r.s.remove(ctx, LoansCollection, loanID)
}

type ledgerRepository struct{ s *Store }

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

func (r *ledgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error) {
	return list(ctx, r.s.ordered(LedgerCollection), filter.Matches)
}

func (r *ledgerRepository) AppendEntry(ctx context.Context, entry domain.Transaction) error {
	return r.s.create(ctx, LedgerCollection, entry.TransactionID, entry)
}

type collectorRepository struct{ s *Store }

var _ portsrepo.CollectorRepositoryFacade = (*collectorRepository)(nil)

func (r *collectorRepository) FindCollectorByID(ctx context.Context, collectorID string) (*domain.Collector, error) {
	return get[domain.Collector](ctx, r.s, CollectorsCollection, collectorID)
}

func (r *collectorRepository) ListCollectors(ctx context.Context) ([]domain.Collector, error) {
	return list[domain.Collector](ctx, r.s.ordered(CollectorsCollection), nil)
}

func (r *collectorRepository) SaveCollector(ctx context.Context, collector domain.Collector) error {
	return r.s.set(ctx, CollectorsCollection, collector.CollectorID, collector)
}

func (r *collectorRepository) DeleteCollector(ctx context.Context, collectorID string) error {
	return r.s.remove(ctx, CollectorsCollection, collectorID)
}

type attendanceRepository struct{ s *Store }

var _ portsrepo.AttendanceRepositoryFacade = (*attendanceRepository)(nil)

// attendanceKey makes (employee, day) the document identity.
func attendanceKey(a domain.Attendance) string {
	return a.EmployeeID + "_" + a.Date.Format("2006-01-02")
}

func (r *attendanceRepository) ListAttendance(ctx context.Context, filter domain.AttendanceFilter) ([]domain.Attendance, error) {
	q := r.s.client.Collection(AttendanceCollection).Query
	if filter.EmployeeID != "" {
		q = q.Where("empId", "==", filter.EmployeeID)
	}
	records, err := list(ctx, q, filter.Matches)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func (r *attendanceRepository) UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error) {
	key := attendanceKey(attendance)
	existing, err := get[domain.Attendance](ctx, r.s, AttendanceCollection, key)
	if err == nil {
		attendance.AttendanceID = existing.AttendanceID
	}
	if err := r.s.set(ctx, AttendanceCollection, key, attendance); err != nil {
		return nil, err
	}
	return &attendance, nil
}

type payrollRepository struct{ s *Store }

var _ portsrepo.PayrollRepositoryFacade = (*payrollRepository)(nil)

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, month string) ([]domain.PayrollRecord, error) {
	q := r.s.ordered(PayrollCollection)
	if month != "" {
		q = r.s.client.Collection(PayrollCollection).Where("month", "==", month)
	}
	return list[domain.PayrollRecord](ctx, q, nil)
}

// SavePayrollRecords checks the month and creates its records in one transaction.
func (r *payrollRepository) SavePayrollRecords(ctx context.Context, records []domain.PayrollRecord) error {
	if len(records) == 0 {
		return nil
	}
	month := records[0].Month
	col := r.s.client.Collection(PayrollCollection)

	docs := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		data, err := toDoc(rec)
		if err != nil {
			return err
		}
		data[seqField] = r.s.nextSeq()
		docs = append(docs, data)
	}

	err := r.s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(col.Where("month", "==", month).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: payroll for %s", apperrors.ErrAlreadyProcessed, month)
		}
		for i, rec := range records {
			if err := tx.Create(col.Doc(rec.RecordID), docs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyProcessed) {
			return err
		}
		return storeError(err, "failed to save payroll records")
	}
	return nil
}

type investorRepository struct{ s *Store }

var _ portsrepo.InvestorRepositoryFacade = (*investorRepository)(nil)

func (r *investorRepository) FindInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error) {
	return get[domain.Investor](ctx, r.s, InvestorsCollection, investorID)
}

func (r *investorRepository) ListInvestors(ctx context.Context) ([]domain.Investor, error) {
	return list[domain.Investor](ctx, r.s.ordered(InvestorsCollection), nil)
}

func (r *investorRepository) SaveInvestor(ctx context.Context, investor domain.Investor) error {
	return r.s.create(ctx, InvestorsCollection, investor.InvestorID, investor)
}

func (r *investorRepository) UpdateInvestor(ctx context.Context, investor domain.Investor) error {
	return r.s.replace(ctx, InvestorsCollection, investor.InvestorID, investor)
}

type taskRepository struct{ s *Store }

var _ portsrepo.TaskRepositoryFacade = (*taskRepository)(nil)

func (r *taskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	return get[domain.Task](ctx, r.s, TasksCollection, taskID)
}

func (r *taskRepository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return list[domain.Task](ctx, r.s.ordered(TasksCollection), nil)
}

func (r *taskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	return r.s.create(ctx, TasksCollection, task.TaskID, task)
}

func (r *taskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	return r.s.replace(ctx, TasksCollection, task.TaskID, task)
}

type assetRepository struct{ s *Store }

var _ portsrepo.AssetRepositoryFacade = (*assetRepository)(nil)

func (r *assetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	return get[domain.Asset](ctx, r.s, AssetsCollection, assetID)
}

func (r *assetRepository) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	return list[domain.Asset](ctx, r.s.ordered(AssetsCollection), nil)
}

func (r *assetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	return r.s.create(ctx, AssetsCollection, asset.AssetID, asset)
}

func (r *assetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	return r.s.replace(ctx, AssetsCollection, asset.AssetID, asset)
}

func (r *assetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	return r.s.remove(ctx, AssetsCollection, assetID)
}

type auditRepository struct{ s *Store }

var _ portsrepo.AuditRepositoryFacade = (*auditRepository)(nil)

func (r *auditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLog) error {
	return r.s.create(ctx, AuditCollection, entry.AuditID, entry)
}

func (r *auditRepository) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	q := r.s.client.Collection(AuditCollection).OrderBy(seqField, firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return list[domain.AuditLog](ctx, q, nil)
}
