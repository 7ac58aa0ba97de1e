package services

import (
	"context"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/SscSPs/microlend_ledger/internal/dto"
)

// InvestorSvcFacade manages investors and their payouts.
type InvestorSvcFacade interface {
	AddInvestor(ctx context.Context, req dto.AddInvestorRequest, actor string) (*domain.Investor, error)
	PayDividend(ctx context.Context, investorID string, req dto.PayDividendRequest, actor string) (*domain.Investor, error)
	GetInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error)
	ListInvestors(ctx context.Context) ([]domain.Investor, error)
}

// TaskSvcFacade manages office tasks.
type TaskSvcFacade interface {
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, actor string) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, req dto.UpdateTaskStatusRequest, actor string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
}

// AssetSvcFacade manages company assets.
type AssetSvcFacade interface {
	CreateAsset(ctx context.Context, req dto.SaveAssetRequest, actor string) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, assetID string, req dto.SaveAssetRequest, actor string) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, assetID string, actor string) error
	ListAssets(ctx context.Context) ([]domain.Asset, error)
}

// AuditSvcFacade exposes the audit trail for display.
type AuditSvcFacade interface {
	ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}
