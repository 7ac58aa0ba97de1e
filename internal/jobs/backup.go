// Package jobs holds scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/adapters/database/filestore"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/robfig/cron/v3"
)

const backupPrefix = "ledger-"

// SnapshotExporter produces the state to back up.
type SnapshotExporter interface {
	Export(ctx context.Context) (*domain.Snapshot, error)
}

// BackupScheduler periodically writes the whole state to dir as JSON.
type BackupScheduler struct {
	cronScheduler *cron.Cron
	exporter      SnapshotExporter
	dir           string
	schedule      string
	keep          int
	logger        *slog.Logger
	clock         func() time.Time

	mu    sync.Mutex
	jobID cron.EntryID
}

// NewBackupScheduler creates a scheduler. schedule is a six-field cron spec
// ("0 0 23 * * *" runs daily at 23:00). keep bounds the number of backup
// files retained; 0 keeps all.
func NewBackupScheduler(exporter SnapshotExporter, dir, schedule string, keep int, logger *slog.Logger) *BackupScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupScheduler{
		cronScheduler: cron.New(cron.WithSeconds()),
		exporter:      exporter,
		dir:           dir,
		schedule:      schedule,
		keep:          keep,
		logger:        logger.With(slog.String("job", "backup")),
		clock:         time.Now,
	}
}

// Start registers the job and starts the cron scheduler.
func (b *BackupScheduler) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, err := b.cronScheduler.AddFunc(b.schedule, func() {
		if _, err := b.RunOnce(context.Background()); err != nil {
			b.logger.Error("Scheduled backup failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling backup job: %w", err)
	}
	b.jobID = id
	b.cronScheduler.Start()
	b.logger.Info("Backup scheduler started", slog.String("schedule", b.schedule), slog.String("dir", b.dir))
	return nil
}

// Stop halts the scheduler and waits for a running backup to finish.
func (b *BackupScheduler) Stop() {
	if b.cronScheduler == nil {
		return
	}
	<-b.cronScheduler.Stop().Done()
	b.logger.Info("Backup scheduler stopped")
}

// RunOnce writes one backup file and returns its path.
func (b *BackupScheduler) RunOnce(ctx context.Context) (string, error) {
	snap, err := b.exporter.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to export snapshot: %w", err)
	}

	name := backupPrefix + b.clock().UTC().Format("20060102-150405") + ".json"
	path := filepath.Join(b.dir, name)
	if err := filestore.WriteSnapshotFile(path, snap); err != nil {
		return "", err
	}
	b.logger.Info("Backup written",
		slog.String("path", path),
		slog.Int("loans", len(snap.Loans)),
		slog.Int("transactions", len(snap.Transactions)))

	if err := b.prune(); err != nil {
		b.logger.Warn("Failed to prune old backups", slog.String("error", err.Error()))
	}
	return path, nil
}

// prune removes the oldest backups beyond keep. Names sort chronologically.
func (b *BackupScheduler) prune() error {
	if b.keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), backupPrefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= b.keep {
		return nil
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-b.keep] {
		if err := os.Remove(filepath.Join(b.dir, name)); err != nil {
			return err
		}
	}
	return nil
}
