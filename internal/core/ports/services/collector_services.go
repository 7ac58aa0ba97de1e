package services

import (
	"context"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/SscSPs/microlend_ledger/internal/dto"
)

// CollectorSvcFacade manages collectors and office employees.
type CollectorSvcFacade interface {
	GetCollectorByID(ctx context.Context, collectorID string) (*domain.Collector, error)
	ListCollectors(ctx context.Context) ([]domain.Collector, error)
	// SaveCollector creates a collector, or replaces the one with req.ID.
	SaveCollector(ctx context.Context, req dto.SaveCollectorRequest, actor string) (*domain.Collector, error)
	// DeleteCollector removes a collector. Administrators cannot be removed.
	DeleteCollector(ctx context.Context, collectorID string, actor string) error
}

// AttendanceSvcFacade records daily attendance.
type AttendanceSvcFacade interface {
	// MarkAttendance upserts the status for an employee and date.
	MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest, actor string) (*domain.Attendance, error)
	ListAttendance(ctx context.Context, month string, employeeID string) ([]domain.Attendance, error)
}

// PayrollSvcFacade computes and freezes monthly payroll.
type PayrollSvcFacade interface {
	// PreviewPayroll computes the month's payroll from attendance.
	PreviewPayroll(ctx context.Context, month string) (*domain.PayrollPreview, error)
	// ProcessPayroll persists the month's records and books the salaries.
	// It fails with apperrors.ErrAlreadyProcessed once a month has records.
	ProcessPayroll(ctx context.Context, month string, actor string) ([]domain.PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, month string) ([]domain.PayrollRecord, error)
}
