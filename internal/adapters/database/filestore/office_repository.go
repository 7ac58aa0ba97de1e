package filestore

import (
	"context"
	"fmt"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
)

type investorRepository struct {
	store *Store
}

var _ portsrepo.InvestorRepositoryFacade = (*investorRepository)(nil)

func investorIndex(snap *domain.Snapshot, id string) int {
	return indexOf(snap.Investors, func(i domain.Investor) bool { return i.InvestorID == id })
}

func (r *investorRepository) FindInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error) {
	var inv domain.Investor
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		i := investorIndex(snap, investorID)
		if i < 0 {
			return apperrors.NotFoundf("investor %s", investorID)
		}
		inv = snap.Investors[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *investorRepository) ListInvestors(ctx context.Context) ([]domain.Investor, error) {
	var out []domain.Investor
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		out = append([]domain.Investor{}, snap.Investors...)
		return nil
	})
	return out, err
}

func (r *investorRepository) SaveInvestor(ctx context.Context, investor domain.Investor) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		if investorIndex(snap, investor.InvestorID) >= 0 {
			return fmt.Errorf("%w: investor %s", apperrors.ErrDuplicate, investor.InvestorID)
		}
		snap.Investors = append(snap.Investors, investor)
		return nil
	})
}

func (r *investorRepository) UpdateInvestor(ctx context.Context, investor domain.Investor) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		i := investorIndex(snap, investor.InvestorID)
		if i < 0 {
			return apperrors.NotFoundf("investor %s", investor.InvestorID)
		}
		snap.Investors[i] = investor
		return nil
	})
}

type taskRepository struct {
	store *Store
}

var _ portsrepo.TaskRepositoryFacade = (*taskRepository)(nil)

func taskIndex(snap *domain.Snapshot, id string) int {
	return indexOf(snap.Tasks, func(t domain.Task) bool { return t.TaskID == id })
}

func (r *taskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	var task domain.Task
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		i := taskIndex(snap, taskID)
		if i < 0 {
			return apperrors.NotFoundf("task %s", taskID)
		}
		task = snap.Tasks[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var out []domain.Task
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		out = append([]domain.Task{}, snap.Tasks...)
		return nil
	})
	return out, err
}

func (r *taskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		snap.Tasks = append(snap.Tasks, task)
		return nil
	})
}

func (r *taskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		i := taskIndex(snap, task.TaskID)
		if i < 0 {
			return apperrors.NotFoundf("task %s", task.TaskID)
		}
		snap.Tasks[i] = task
		return nil
	})
}

type assetRepository struct {
	store *Store
}

var _ portsrepo.AssetRepositoryFacade = (*assetRepository)(nil)

func assetIndex(snap *domain.Snapshot, id string) int {
	return indexOf(snap.Assets, func(a domain.Asset) bool { return a.AssetID == id })
}

func (r *assetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	var asset domain.Asset
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		i := assetIndex(snap, assetID)
		if i < 0 {
			return apperrors.NotFoundf("asset %s", assetID)
		}
		asset = snap.Assets[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	var out []domain.Asset
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		out = append([]domain.Asset{}, snap.Assets...)
		return nil
	})
	return out, err
}

func (r *assetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		snap.Assets = append(snap.Assets, asset)
		return nil
	})
}

func (r *assetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		i := assetIndex(snap, asset.AssetID)
		if i < 0 {
			return apperrors.NotFoundf("asset %s", asset.AssetID)
		}
		snap.Assets[i] = asset
		return nil
	})
}

func (r *assetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		i := assetIndex(snap, assetID)
		if i < 0 {
			return apperrors.NotFoundf("asset %s", assetID)
		}
		snap.Assets = append(snap.Assets[:i], snap.Assets[i+1:]...)
		return nil
	})
}

type auditRepository struct {
	store *Store
}

var _ portsrepo.AuditRepositoryFacade = (*auditRepository)(nil)

func (r *auditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLog) error {
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		snap.AuditLogs = append(snap.AuditLogs, entry)
		return nil
	})
}

func (r *auditRepository) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	out := []domain.AuditLog{}
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		for i := len(snap.AuditLogs) - 1; i >= 0; i-- {
			if limit > 0 && len(out) == limit {
				break
			}
			out = append(out, snap.AuditLogs[i])
		}
		return nil
	})
	return out, err
}

type snapshotRepository struct {
	store *Store
}

var _ portsrepo.SnapshotRepository = (*snapshotRepository)(nil)

func (r *snapshotRepository) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var out domain.Snapshot
	err := r.store.read(ctx, func(snap *domain.Snapshot) error {
		out = cloneSnapshot(snap)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *snapshotRepository) ImportSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	snapshot.Normalize()
	return r.store.write(ctx, func(snap *domain.Snapshot) error {
		*snap = cloneSnapshot(&snapshot)
		return nil
	})
}

// cloneSnapshot copies every collection so the store and its callers never share backing arrays.
func cloneSnapshot(snap *domain.Snapshot) domain.Snapshot {
	return domain.Snapshot{
		Collectors:     append([]domain.Collector{}, snap.Collectors...),
		Loans:          append([]domain.Loan{}, snap.Loans...),
		Transactions:   append([]domain.Transaction{}, snap.Transactions...),
		Attendance:     append([]domain.Attendance{}, snap.Attendance...),
		PayrollRecords: append([]domain.PayrollRecord{}, snap.PayrollRecords...),
		Investors:      append([]domain.Investor{}, snap.Investors...),
		Tasks:          append([]domain.Task{}, snap.Tasks...),
		Assets:         append([]domain.Asset{}, snap.Assets...),
		AuditLogs:      append([]domain.AuditLog{}, snap.AuditLogs...),
	}
}
