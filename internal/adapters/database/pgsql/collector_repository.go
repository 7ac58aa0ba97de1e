package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxCollectorRepository struct {
	BaseRepository
}

var _ portsrepo.CollectorRepositoryFacade = (*PgxCollectorRepository)(nil)

const collectorColumns = `collector_id, name, area, role, daily_rate, monthly_rate, quota, start_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCollector(row scanner) (domain.Collector, error) {
	var c domain.Collector
	err := row.Scan(&c.CollectorID, &c.Name, &c.Area, &c.Role, &c.DailyRate, &c.MonthlyRate, &c.Quota, &c.StartDate,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy)
	return c, err
}

func upsertCollector(ctx context.Context, q querier, c domain.Collector) error {
	query := `
		INSERT INTO collectors (` + collectorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (collector_id) DO UPDATE SET
			name = EXCLUDED.name, area = EXCLUDED.area, role = EXCLUDED.role,
			daily_rate = EXCLUDED.daily_rate, monthly_rate = EXCLUDED.monthly_rate, quota = EXCLUDED.quota,
			start_date = EXCLUDED.start_date,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;`
	_, err := q.Exec(ctx, query, c.CollectorID, c.Name, c.Area, c.Role, c.DailyRate, c.MonthlyRate, c.Quota, c.StartDate,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "collector", c.CollectorID)
	}
	return nil
}

func (r *PgxCollectorRepository) FindCollectorByID(ctx context.Context, collectorID string) (*domain.Collector, error) {
	query := `SELECT ` + collectorColumns + ` FROM collectors WHERE collector_id = $1;`
	c, err := scanCollector(r.Pool.QueryRow(ctx, query, collectorID))
	if err != nil {
		return nil, mapReadError(err, "collector", collectorID)
	}
	return &c, nil
}

func (r *PgxCollectorRepository) ListCollectors(ctx context.Context) ([]domain.Collector, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+collectorColumns+` FROM collectors ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query collectors: %w", err)
	}
	defer rows.Close()

	collectors := []domain.Collector{}
	for rows.Next() {
		c, err := scanCollector(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collector row: %w", err)
		}
		collectors = append(collectors, c)
	}
	return collectors, rows.Err()
}

func (r *PgxCollectorRepository) SaveCollector(ctx context.Context, collector domain.Collector) error {
	return upsertCollector(ctx, r.Pool, collector)
}

func (r *PgxCollectorRepository) DeleteCollector(ctx context.Context, collectorID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM collectors WHERE collector_id = $1;`, collectorID)
	if err != nil {
		return fmt.Errorf("failed to delete collector %s: %w", collectorID, err)
	}
	return expectOne(tag, "collector", collectorID)
}

type PgxAttendanceRepository struct {
	BaseRepository
}

var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

const attendanceColumns = `attendance_id, emp_id, date, status, marked_by`

func (r *PgxAttendanceRepository) ListAttendance(ctx context.Context, filter domain.AttendanceFilter) ([]domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE ($1 = '' OR emp_id = $1)
		  AND ($2 = '' OR to_char(date, 'YYYY-MM') = $2)
		ORDER BY date;`
	rows, err := r.Pool.Query(ctx, query, filter.EmployeeID, filter.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := []domain.Attendance{}
	for rows.Next() {
		var a domain.Attendance
		if err := rows.Scan(&a.AttendanceID, &a.EmployeeID, &a.Date, &a.Status, &a.MarkedBy); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func upsertAttendance(ctx context.Context, q querier, a domain.Attendance) (*domain.Attendance, error) {
	query := `
		INSERT INTO attendance (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (emp_id, date) DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by
		RETURNING attendance_id;`
	if err := q.QueryRow(ctx, query, a.AttendanceID, a.EmployeeID, a.Date, a.Status, a.MarkedBy).Scan(&a.AttendanceID); err != nil {
		return nil, mapWriteError(err, "attendance", a.AttendanceID)
	}
	return &a, nil
}

// UpsertAttendance keeps the existing ID when the employee already has a record for the day.
func (r *PgxAttendanceRepository) UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error) {
	return upsertAttendance(ctx, r.Pool, attendance)
}

type PgxPayrollRepository struct {
	BaseRepository
}

var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

const payrollColumns = `record_id, month, emp_id, emp_name, days_present, daily_rate, gross_pay, deductions, net_pay,
	status, processed_at, processed_by`

func insertPayrollRecord(ctx context.Context, q querier, p domain.PayrollRecord) error {
	query := `INSERT INTO payroll_records (` + payrollColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := q.Exec(ctx, query, p.RecordID, p.Month, p.EmployeeID, p.EmployeeName, p.DaysPresent, p.DailyRate,
		p.GrossPay, p.Deductions, p.NetPay, p.Status, p.ProcessedAt, p.ProcessedBy)
	if err != nil {
		return mapWriteError(err, "payroll record", p.RecordID)
	}
	return nil
}

func (r *PgxPayrollRepository) ListPayrollRecords(ctx context.Context, month string) ([]domain.PayrollRecord, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_records
		WHERE ($1 = '' OR month = $1)
		ORDER BY processed_at, emp_name;`
	rows, err := r.Pool.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	records := []domain.PayrollRecord{}
	for rows.Next() {
		var p domain.PayrollRecord
		if err := rows.Scan(&p.RecordID, &p.Month, &p.EmployeeID, &p.EmployeeName, &p.DaysPresent, &p.DailyRate,
			&p.GrossPay, &p.Deductions, &p.NetPay, &p.Status, &p.ProcessedAt, &p.ProcessedBy); err != nil {
			return nil, fmt.Errorf("failed to scan payroll row: %w", err)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// SavePayrollRecords inserts a month's records in one transaction.
func (r *PgxPayrollRepository) SavePayrollRecords(ctx context.Context, records []domain.PayrollRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	batch := &pgx.Batch{}
	query := `INSERT INTO payroll_records (` + payrollColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	for _, p := range records {
		batch.Queue(query, p.RecordID, p.Month, p.EmployeeID, p.EmployeeName, p.DaysPresent, p.DailyRate,
			p.GrossPay, p.Deductions, p.NetPay, p.Status, p.ProcessedAt, p.ProcessedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && len(records) > 0 {
			return fmt.Errorf("%w: payroll for %s", apperrors.ErrAlreadyProcessed, records[0].Month)
		}
		return fmt.Errorf("failed to insert payroll records: %w", err)
	}
	return r.Commit(ctx, tx)
}
