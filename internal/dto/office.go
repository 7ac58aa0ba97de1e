package dto

import (
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaskRequest adds an office task.
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	AssignedTo  string              `json:"assignedTo"`
	DueDate     string              `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Priority    domain.TaskPriority `json:"priority"`
}

// UpdateTaskStatusRequest moves a task between states.
type UpdateTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status" binding:"required"`
}

// SaveAssetRequest creates or updates an asset.
type SaveAssetRequest struct {
	Name         string             `json:"name" binding:"required"`
	Type         domain.AssetType   `json:"type"`
	Value        decimal.Decimal    `json:"value" binding:"dnonnegative"`
	AssignedTo   string             `json:"assignedTo"`
	Status       domain.AssetStatus `json:"status"`
	PurchaseDate string             `json:"purchaseDate" binding:"omitempty,datetime=2006-01-02"`
	Notes        string             `json:"notes"`
}
