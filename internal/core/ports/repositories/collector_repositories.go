package repositories

import (
	"context"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
)

// CollectorReader defines read operations for collector data
type CollectorReader interface {
	FindCollectorByID(ctx context.Context, collectorID string) (*domain.Collector, error)
	ListCollectors(ctx context.Context) ([]domain.Collector, error)
}

// CollectorWriter defines write operations for collector data
type CollectorWriter interface {
	// SaveCollector inserts or replaces a collector by ID.
	SaveCollector(ctx context.Context, collector domain.Collector) error
	DeleteCollector(ctx context.Context, collectorID string) error
}

// CollectorRepositoryFacade combines all collector-related repository interfaces
type CollectorRepositoryFacade interface {
	CollectorReader
	CollectorWriter
}

// AttendanceReader defines read operations for attendance data
type AttendanceReader interface {
	ListAttendance(ctx context.Context, filter domain.AttendanceFilter) ([]domain.Attendance, error)
}

// AttendanceWriter defines write operations for attendance data
type AttendanceWriter interface {
	// UpsertAttendance replaces the record for the same employee and date, if
	// any, keeping its ID. The stored record is returned.
	UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error)
}

// AttendanceRepositoryFacade combines all attendance-related repository interfaces
type AttendanceRepositoryFacade interface {
	AttendanceReader
	AttendanceWriter
}

// PayrollReader defines read operations for payroll records
type PayrollReader interface {
	// ListPayrollRecords returns the records of a month, or every record when month is empty.
	ListPayrollRecords(ctx context.Context, month string) ([]domain.PayrollRecord, error)
}

// PayrollWriter defines write operations for payroll records
type PayrollWriter interface {
	// SavePayrollRecords stores one month's records. It fails with
	// apperrors.ErrAlreadyProcessed when that month already has records.
	SavePayrollRecords(ctx context.Context, records []domain.PayrollRecord) error
}

// PayrollRepositoryFacade combines all payroll-related repository interfaces
type PayrollRepositoryFacade interface {
	PayrollReader
	PayrollWriter
}
