package repositories

import (
	"context"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
)

// InvestorRepositoryFacade persists investors.
type InvestorRepositoryFacade interface {
	FindInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error)
	ListInvestors(ctx context.Context) ([]domain.Investor, error)
	SaveInvestor(ctx context.Context, investor domain.Investor) error
	UpdateInvestor(ctx context.Context, investor domain.Investor) error
}

// TaskRepositoryFacade persists office tasks.
type TaskRepositoryFacade interface {
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	SaveTask(ctx context.Context, task domain.Task) error
	UpdateTask(ctx context.Context, task domain.Task) error
}

// AssetRepositoryFacade persists company assets.
type AssetRepositoryFacade interface {
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	SaveAsset(ctx context.Context, asset domain.Asset) error
	UpdateAsset(ctx context.Context, asset domain.Asset) error
	DeleteAsset(ctx context.Context, assetID string) error
}

// AuditWriter appends audit log entries.
type AuditWriter interface {
	AppendAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditRepositoryFacade combines audit reads and writes. Reads exist only for
// presentation; business logic never consults the trail.
type AuditRepositoryFacade interface {
	AuditWriter
	// ListAuditLogs returns the most recent entries first, up to limit (0 = all).
	ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

// SnapshotRepository exports and replaces the whole persisted state.
type SnapshotRepository interface {
	ExportSnapshot(ctx context.Context) (*domain.Snapshot, error)
	// ImportSnapshot replaces every collection with the snapshot's contents.
	ImportSnapshot(ctx context.Context, snapshot domain.Snapshot) error
}
