package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/adapters/database/filestore"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func TestRunOnce_WritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	exporter := new(MockExporter)
	snap := &domain.Snapshot{Loans: []domain.Loan{{LoanID: "L1", Name: "Maria"}}}
	snap.Normalize()
	exporter.On("Export", mock.Anything).Return(snap, nil)

	b := NewBackupScheduler(exporter, dir, "0 0 23 * * *", 0, nil)
	b.clock = func() time.Time { return time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC) }

	path, err := b.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ledger-20240501-230000.json"), path)

	restored, err := filestore.ReadSnapshotFile(path)
	require.NoError(t, err)
	require.Len(t, restored.Loans, 1)
	assert.Equal(t, "Maria", restored.Loans[0].Name)
	exporter.AssertExpectations(t)
}

func TestRunOnce_ExportFailure(t *testing.T) {
	exporter := new(MockExporter)
	exporter.On("Export", mock.Anything).Return(nil, errors.New("store offline"))

	b := NewBackupScheduler(exporter, t.TempDir(), "0 0 23 * * *", 0, nil)
	_, err := b.RunOnce(context.Background())
	assert.ErrorContains(t, err, "store offline")
}

func TestRunOnce_PrunesOldBackups(t *testing.T) {
	dir := t.TempDir()
	exporter := new(MockExporter)
	snap := &domain.Snapshot{}
	snap.Normalize()
	exporter.On("Export", mock.Anything).Return(snap, nil)

	b := NewBackupScheduler(exporter, dir, "0 0 23 * * *", 2, nil)
	day := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		current := day.AddDate(0, 0, i)
		b.clock = func() time.Time { return current }
		_, err := b.RunOnce(context.Background())
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ledger-20240502-230000.json", entries[0].Name())
	assert.Equal(t, "ledger-20240503-230000.json", entries[1].Name())
}

func TestStart_InvalidSchedule(t *testing.T) {
	b := NewBackupScheduler(new(MockExporter), t.TempDir(), "not a schedule", 0, nil)
	assert.Error(t, b.Start())
}
