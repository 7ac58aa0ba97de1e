// Package filestore keeps the whole state in memory and persists it as a
// single JSON snapshot file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store is the local file backend. A Store with an empty path never touches disk.
type Store struct {
	mu    sync.RWMutex
	path  string
	state domain.Snapshot
}

var _ portsrepo.Store = (*Store)(nil)

// Open loads the snapshot at path, or starts a fresh state seeded with an
// administrator when the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path != "" {
		snap, err := ReadSnapshotFile(path)
		switch {
		case err == nil:
			s.state = *snap
			return s, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	s.state = seedState(time.Now())
	if err := s.persist(); err != nil {
		return nil, err
	}
	slog.Info("Initialised fresh ledger state", slog.String("path", path))
	return s, nil
}

// NewInMemory returns a store that is never written to disk.
func NewInMemory() *Store {
	return &Store{state: seedState(time.Now())}
}

func seedState(now time.Time) domain.Snapshot {
	var snap domain.Snapshot
	snap.Normalize()
	snap.Collectors = append(snap.Collectors, domain.Collector{
		CollectorID: domain.DefaultAdminID,
		Name:        domain.DefaultAdminName,
		Area:        domain.DefaultAdminArea,
		Role:        domain.RoleAdmin,
		DailyRate:   decimal.Zero,
		MonthlyRate: decimal.Zero,
		Quota:       decimal.Zero,
		AuditFields: domain.NewAuditFields(domain.SystemActor, now),
	})
	return snap
}

// Repositories returns repositories sharing this store's state.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LoanRepo:       &loanRepository{s},
		LedgerRepo:     &ledgerRepository{s},
		CollectorRepo:  &collectorRepository{s},
		AttendanceRepo: &attendanceRepository{s},
		PayrollRepo:    &payrollRepository{s},
		InvestorRepo:   &investorRepository{s},
		TaskRepo:       &taskRepository{s},
		AssetRepo:      &assetRepository{s},
		AuditRepo:      &auditRepository{s},
		SnapshotRepo:   &snapshotRepository{s},
	}
}

// Close flushes the state one last time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

// read runs fn under the read lock.
func (s *Store) read(ctx context.Context, fn func(*domain.Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

// write runs fn under the write lock and persists the result when fn succeeds.
// The in-memory change is kept even if persisting fails.
func (s *Store) write(ctx context.Context, fn func(*domain.Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.state); err != nil {
		return err
	}
	return s.persist()
}

// persist must be called with the write lock held.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	if err := WriteSnapshotFile(s.path, &s.state); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to persist state", err)
	}
	return nil
}

// WriteSnapshotFile writes snap as indented JSON, replacing path atomically.
func WriteSnapshotFile(path string, snap *domain.Snapshot) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ReadSnapshotFile decodes a snapshot written by WriteSnapshotFile.
func ReadSnapshotFile(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	snap.Normalize()
	return &snap, nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
