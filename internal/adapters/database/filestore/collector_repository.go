package filestore

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
)

type collectorRepository struct {
	store *Store
}

var _ portsrepo.CollectorRepositoryFacade = (*collectorRepository)(nil)

func collectorIndex(snap *domain.Snapshot, id string) int {
	return indexOf(snap.Collectors, func(c domain.Collector) bool { return c.CollectorID == id })
}

func (r *collectorRepository) FindCollectorByID(ctx context.Context, collectorID string) (*domain.Collector, error) {
	var c domain.Collector
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		i := collectorIndex(snap, collectorID)
		if i < 0 {
			return apperrors.NotFoundf("collector %s", collectorID)
		}
		c = snap.Collectors[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectorRepository) ListCollectors(ctx context.Context) ([]domain.Collector, error) {
	var out []domain.Collector
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		out = append([]domain.Collector{}, snap.Collectors...)
		return nil
	})
	return out, err
}

func (r *collectorRepository) SaveCollector(ctx context.Context, collector domain.Collector) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		if i := collectorIndex(snap, collector.CollectorID); i >= 0 {
			snap.Collectors[i] = collector
			return nil
		}
		snap.Collectors = append(snap.Collectors, collector)
		return nil
	})
}

func (r *collectorRepository) DeleteCollector(ctx context.Context, collectorID string) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		i := collectorIndex(snap, collectorID)
		if i < 0 {
			return apperrors.NotFoundf("collector %s", collectorID)
		}
		snap.Collectors = append(snap.Collectors[:i], snap.Collectors[i+1:]...)
		return nil
	})
}

type attendanceRepository struct {
	store *Store
}

var _ portsrepo.AttendanceRepositoryFacade = (*attendanceRepository)(nil)

func (r *attendanceRepository) ListAttendance(ctx context.Context, filter domain.AttendanceFilter) ([]domain.Attendance, error) {
	out := []domain.Attendance{}
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		for _, a := range snap.Attendance {
			if filter.Matches(a) {
				out = append(out, a)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, err
}

func (r *attendanceRepository) UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error) {
	err := r.store.write(ctx, func(snap *domain.Snapshot) error {
		i := indexOf(snap.Attendance, func(a domain.Attendance) bool {
			return a.EmployeeID == attendance.EmployeeID && dates.SameDay(a.Date, attendance.Date)
		})
		if i >= 0 {
			attendance.AttendanceID = snap.Attendance[i].AttendanceID
			snap.Attendance[i] = attendance
			return nil
		}
		snap.Attendance = append(snap.Attendance, attendance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

type payrollRepository struct {
	store *Store
}

var _ portsrepo.PayrollRepositoryFacade = (*payrollRepository)(nil)

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, month string) ([]domain.PayrollRecord, error) {
	out := []domain.PayrollRecord{}
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		for _, rec := range snap.PayrollRecords {
			if month == "" || rec.Month == month {
				out = append(out, rec)
			}
		}
		return nil
	})
	return out, err
}

func (r *payrollRepository) SavePayrollRecords(ctx context.Context, records []domain.PayrollRecord) error {
	if len(records) == 0 {
		return nil
	}
	month := records[0].Month
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		for _, rec := range snap.PayrollRecords {
			if rec.Month == month {
				return fmt.Errorf("%w: payroll for %s", apperrors.ErrAlreadyProcessed, month)
			}
		}
		snap.PayrollRecords = append(snap.PayrollRecords, records...)
		return nil
	})
}
