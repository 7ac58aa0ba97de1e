package services

import (
	"context"
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

// taskService implements the TaskSvcFacade interface
type taskService struct {
	BaseService
	taskRepo portsrepo.TaskRepositoryFacade
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade, options ...ServiceOption) portssvc.TaskSvcFacade {
	return &taskService{BaseService: newBaseService(nil, options), taskRepo: taskRepo}
}

func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, actor string) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validationf("task title is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, apperrors.Validationf("unknown task priority %q", priority)
	}
	due, err := optionalDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	task := domain.Task{
		TaskID:      uuid.NewString(),
		Title:       title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     due,
		Status:      domain.TaskPending,
		Priority:    priority,
		AuditFields: domain.NewAuditFields(actor, s.Now()),
	}
	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		s.LogError(ctx, err, "Failed to save task")
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return &task, nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, taskID string, req dto.UpdateTaskStatusRequest, actor string) (*domain.Task, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.Validationf("unknown task status %q", req.Status)
	}
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.Status = req.Status
	task.Touch(actor, s.Now())
	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "Failed to update task", slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// assetService implements the AssetSvcFacade interface
type assetService struct {
	BaseService
	assetRepo portsrepo.AssetRepositoryFacade
}

// NewAssetService creates a new asset service.
func NewAssetService(assetRepo portsrepo.AssetRepositoryFacade, auditRepo portsrepo.AuditWriter, options ...ServiceOption) portssvc.AssetSvcFacade {
	return &assetService{BaseService: newBaseService(auditRepo, options), assetRepo: assetRepo}
}

func assetFromRequest(req dto.SaveAssetRequest) (domain.Asset, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Asset{}, apperrors.Validationf("asset name is required")
	}
	if req.Value.IsNegative() {
		return domain.Asset{}, apperrors.Validationf("asset value cannot be negative")
	}
	assetType := req.Type
	if assetType == "" {
		assetType = domain.AssetOther
	}
	if !assetType.IsValid() {
		return domain.Asset{}, apperrors.Validationf("unknown asset type %q", assetType)
	}
	status := req.Status
	if status == "" {
		status = domain.AssetGood
	}
	if !status.IsValid() {
		return domain.Asset{}, apperrors.Validationf("unknown asset status %q", status)
	}
	assignedTo := strings.TrimSpace(req.AssignedTo)
	if assignedTo == "" {
		assignedTo = domain.UnassignedAsset
	}
	purchased, err := optionalDate(req.PurchaseDate)
	if err != nil {
		return domain.Asset{}, err
	}
	return domain.Asset{
		Name:         name,
		Type:         assetType,
		Value:        req.Value,
		AssignedTo:   assignedTo,
		Status:       status,
		PurchaseDate: purchased,
		Notes:        req.Notes,
	}, nil
}

func (s *assetService) CreateAsset(ctx context.Context, req dto.SaveAssetRequest, actor string) (*domain.Asset, error) {
	asset, err := assetFromRequest(req)
	if err != nil {
		return nil, err
	}
	asset.AssetID = uuid.NewString()
	asset.AuditFields = domain.NewAuditFields(actor, s.Now())
	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to save asset")
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditCreate, "Asset Added: "+asset.Name); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, assetID string, req dto.SaveAssetRequest, actor string) (*domain.Asset, error) {
	existing, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	asset, err := assetFromRequest(req)
	if err != nil {
		return nil, err
	}
	asset.AssetID = existing.AssetID
	asset.AuditFields = existing.AuditFields
	asset.Touch(actor, s.Now())
	if err := s.assetRepo.UpdateAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to update asset", slog.String("asset_id", assetID))
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditUpdate, "Asset Updated: "+asset.Name); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *assetService) DeleteAsset(ctx context.Context, assetID string, actor string) error {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if err := s.assetRepo.DeleteAsset(ctx, assetID); err != nil {
		s.LogError(ctx, err, "Failed to delete asset", slog.String("asset_id", assetID))
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return s.RecordAudit(ctx, actor, domain.AuditDelete, "Asset Removed: "+asset.Name)
}

func (s *assetService) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	assets, err := s.assetRepo.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// auditService implements the AuditSvcFacade interface
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	logs, err := s.auditRepo.ListAuditLogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
