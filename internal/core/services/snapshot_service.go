package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
)

// snapshotService implements the SnapshotSvcFacade interface
type snapshotService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepository
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(snapshotRepo portsrepo.SnapshotRepository, auditRepo portsrepo.AuditWriter, options ...ServiceOption) portssvc.SnapshotSvcFacade {
	return &snapshotService{
		BaseService:  newBaseService(auditRepo, options),
		snapshotRepo: snapshotRepo,
	}
}

var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

func (s *snapshotService) Export(ctx context.Context) (*domain.Snapshot, error) {
	snapshot, err := s.snapshotRepo.ExportSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to export snapshot")
		return nil, fmt.Errorf("failed to export snapshot: %w", err)
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (s *snapshotService) Import(ctx context.Context, snapshot domain.Snapshot, actor string) error {
	snapshot.Normalize()
	if err := s.snapshotRepo.ImportSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to import snapshot")
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	if actor == "" {
		actor = domain.SystemActor
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditSystem, "Database restored from backup"); err != nil {
		return err
	}
	s.LogInfo(ctx, "Snapshot imported",
		slog.Int("loans", len(snapshot.Loans)),
		slog.Int("transactions", len(snapshot.Transactions)),
		slog.Int("collectors", len(snapshot.Collectors)))
	return nil
}
