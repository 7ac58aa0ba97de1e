package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/google/uuid"
)

// collectorService implements the CollectorSvcFacade interface
type collectorService struct {
	BaseService
	collectorRepo portsrepo.CollectorRepositoryFacade
}

// NewCollectorService creates a new collector service.
func NewCollectorService(collectorRepo portsrepo.CollectorRepositoryFacade, auditRepo portsrepo.AuditWriter, options ...ServiceOption) portssvc.CollectorSvcFacade {
	return &collectorService{
		BaseService:   newBaseService(auditRepo, options),
		collectorRepo: collectorRepo,
	}
}

var _ portssvc.CollectorSvcFacade = (*collectorService)(nil)

func (s *collectorService) GetCollectorByID(ctx context.Context, collectorID string) (*domain.Collector, error) {
	collector, err := s.collectorRepo.FindCollectorByID(ctx, collectorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find collector", slog.String("collector_id", collectorID))
		}
		return nil, err
	}
	return collector, nil
}

func (s *collectorService) ListCollectors(ctx context.Context) ([]domain.Collector, error) {
	collectors, err := s.collectorRepo.ListCollectors(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list collectors")
		return nil, fmt.Errorf("failed to list collectors: %w", err)
	}
	return collectors, nil
}

func (s *collectorService) SaveCollector(ctx context.Context, req dto.SaveCollectorRequest, actor string) (*domain.Collector, error) {
	name := strings.TrimSpace(req.Name)
	area := strings.TrimSpace(req.Area)
	if name == "" || area == "" {
		return nil, apperrors.Validationf("collector name and area are required")
	}
	role := req.Role
	if role == "" {
		role = domain.RoleCollector
	}
	if !role.IsValid() {
		return nil, apperrors.Validationf("unknown role %q", req.Role)
	}
	if req.DailyRate.IsNegative() || req.MonthlyRate.IsNegative() || req.Quota.IsNegative() {
		return nil, apperrors.Validationf("rates and quota cannot be negative")
	}
	startDate, err := optionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	collector := domain.Collector{
		CollectorID: req.ID,
		Name:        name,
		Area:        area,
		Role:        role,
		DailyRate:   req.DailyRate,
		MonthlyRate: req.MonthlyRate,
		Quota:       req.Quota,
		StartDate:   startDate,
		AuditFields: domain.NewAuditFields(actor, now),
	}

	if collector.CollectorID == "" {
		collector.CollectorID = uuid.NewString()
	} else {
		existing, err := s.collectorRepo.FindCollectorByID(ctx, collector.CollectorID)
		switch {
		case err == nil:
			collector.CreatedAt = existing.CreatedAt
			collector.CreatedBy = existing.CreatedBy
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("failed to look up collector: %w", err)
		}
	}

	if err := s.collectorRepo.SaveCollector(ctx, collector); err != nil {
		s.LogError(ctx, err, "Failed to save collector", slog.String("collector_id", collector.CollectorID))
		return nil, fmt.Errorf("failed to save collector: %w", err)
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditUpdate, "Collector Updated/Created: "+collector.Name); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Collector saved", slog.String("collector_id", collector.CollectorID))
	return &collector, nil
}

func (s *collectorService) DeleteCollector(ctx context.Context, collectorID string, actor string) error {
	collector, err := s.collectorRepo.FindCollectorByID(ctx, collectorID)
	if err != nil {
		return err
	}
	if collector.IsAdmin() {
		return fmt.Errorf("%w: cannot delete administrator %s", apperrors.ErrForbidden, collector.Name)
	}
	if err := s.collectorRepo.DeleteCollector(ctx, collectorID); err != nil {
		s.LogError(ctx, err, "Failed to delete collector", slog.String("collector_id", collectorID))
		return fmt.Errorf("failed to delete collector: %w", err)
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditDelete, "Collector Deleted: "+collector.Name); err != nil {
		return err
	}
	s.LogInfo(ctx, "Collector deleted", slog.String("collector_id", collectorID))
	return nil
}
