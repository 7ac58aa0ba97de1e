package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/google/uuid"
)

// attendanceService implements the AttendanceSvcFacade interface
type attendanceService struct {
	BaseService
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	collectorRepo  portsrepo.CollectorReader
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(attendanceRepo portsrepo.AttendanceRepositoryFacade, collectorRepo portsrepo.CollectorReader, options ...ServiceOption) portssvc.AttendanceSvcFacade {
	return &attendanceService{
		BaseService:    newBaseService(nil, options),
		attendanceRepo: attendanceRepo,
		collectorRepo:  collectorRepo,
	}
}

var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

func (s *attendanceService) MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest, actor string) (*domain.Attendance, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.Validationf("unknown attendance status %q", req.Status)
	}
	day, err := dates.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if _, err := s.collectorRepo.FindCollectorByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	record := domain.Attendance{
		AttendanceID: uuid.NewString(),
		Date:         day,
		EmployeeID:   req.EmployeeID,
		Status:       req.Status,
		MarkedBy:     actor,
	}
	stored, err := s.attendanceRepo.UpsertAttendance(ctx, record)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark attendance", slog.String("employee_id", req.EmployeeID))
		return nil, fmt.Errorf("failed to mark attendance: %w", err)
	}

	s.LogDebug(ctx, "Attendance marked",
		slog.String("employee_id", stored.EmployeeID),
		slog.String("date", req.Date),
		slog.String("status", string(stored.Status)))
	return stored, nil
}

func (s *attendanceService) ListAttendance(ctx context.Context, month string, employeeID string) ([]domain.Attendance, error) {
	if month != "" {
		if _, err := dates.ParseMonth(month); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	records, err := s.attendanceRepo.ListAttendance(ctx, domain.AttendanceFilter{EmployeeID: employeeID, Month: month})
	if err != nil {
		s.LogError(ctx, err, "Failed to list attendance")
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
