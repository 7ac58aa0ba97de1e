package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/utils/accounting"
	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/google/uuid"
)

// payrollService implements the PayrollSvcFacade interface
type payrollService struct {
	BaseService
	payrollRepo    portsrepo.PayrollRepositoryFacade
	collectorRepo  portsrepo.CollectorReader
	attendanceRepo portsrepo.AttendanceReader
	ledgerRepo     portsrepo.LedgerWriter
}

// NewPayrollService creates a new payroll service.
func NewPayrollService(
	payrollRepo portsrepo.PayrollRepositoryFacade,
	collectorRepo portsrepo.CollectorReader,
	attendanceRepo portsrepo.AttendanceReader,
	ledgerRepo portsrepo.LedgerWriter,
	auditRepo portsrepo.AuditWriter,
	options ...ServiceOption,
) portssvc.PayrollSvcFacade {
	return &payrollService{
		BaseService:    newBaseService(auditRepo, options),
		payrollRepo:    payrollRepo,
		collectorRepo:  collectorRepo,
		attendanceRepo: attendanceRepo,
		ledgerRepo:     ledgerRepo,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func validateMonth(month string) error {
	if _, err := dates.ParseMonth(month); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func (s *payrollService) PreviewPayroll(ctx context.Context, month string) (*domain.PayrollPreview, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	collectors, err := s.collectorRepo.ListCollectors(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list collectors for payroll")
		return nil, fmt.Errorf("failed to list collectors: %w", err)
	}
	attendance, err := s.attendanceRepo.ListAttendance(ctx, domain.AttendanceFilter{Month: month})
	if err != nil {
		s.LogError(ctx, err, "Failed to list attendance for payroll")
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	existing, err := s.payrollRepo.ListPayrollRecords(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	lines := accounting.PayrollLines(collectors, attendance, month)
	return &domain.PayrollPreview{
		Month:       month,
		Lines:       lines,
		TotalPayout: accounting.TotalPayout(lines),
		Processed:   len(existing) > 0,
	}, nil
}

func (s *payrollService) ProcessPayroll(ctx context.Context, month string, actor string) ([]domain.PayrollRecord, error) {
	logger := s.GetLogger(ctx).With(slog.String("month", month), slog.String("actor", actor))

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	preview, err := s.PreviewPayroll(ctx, month)
	if err != nil {
		return nil, err
	}
	if preview.Processed {
		logger.Warn("Payroll already processed")
		return nil, fmt.Errorf("%w: payroll for %s", apperrors.ErrAlreadyProcessed, month)
	}
	if !preview.TotalPayout.IsPositive() {
		return nil, apperrors.Validationf("no payable attendance recorded for %s", month)
	}

	now := s.Now()
	today := s.Today()
	records := make([]domain.PayrollRecord, 0, len(preview.Lines))
	entries := make([]domain.Transaction, 0, len(preview.Lines))
	for _, line := range preview.Lines {
		records = append(records, domain.PayrollRecord{
			RecordID:     uuid.NewString(),
			Month:        month,
			EmployeeID:   line.EmployeeID,
			EmployeeName: line.EmployeeName,
			DaysPresent:  line.DaysPresent,
			DailyRate:    line.DailyRate,
			GrossPay:     line.GrossPay,
			Deductions:   line.Deductions,
			NetPay:       line.NetPay,
			Status:       domain.PayrollStatusPaid,
			ProcessedAt:  now,
			ProcessedBy:  actor,
		})
		entries = append(entries, s.NewEntry(domain.Payroll,
			fmt.Sprintf("Salary: %s (%s)", line.EmployeeName, month),
			line.NetPay, actor, today, "", ""))
	}

	// Records are written before the salaries; the store rejects a month that already has records.
	if err := s.payrollRepo.SavePayrollRecords(ctx, records); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyProcessed) {
			logger.Warn("Payroll processed concurrently")
			return nil, err
		}
		logger.Error("Failed to save payroll records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payroll records: %w", err)
	}
	if err := s.AppendEntries(ctx, s.ledgerRepo, entries...); err != nil {
		return nil, err
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditSystem, "Payroll Processed: "+month); err != nil {
		return nil, err
	}

	logger.Info("Payroll processed",
		slog.Int("employees", len(records)),
		slog.String("total_payout", preview.TotalPayout.String()))
	return records, nil
}

func (s *payrollService) ListPayrollRecords(ctx context.Context, month string) ([]domain.PayrollRecord, error) {
	if month != "" {
		if err := validateMonth(month); err != nil {
			return nil, err
		}
	}
	records, err := s.payrollRepo.ListPayrollRecords(ctx, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payroll records")
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	return records, nil
}
