package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus is the progress of an office task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
)

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// TaskPriority orders tasks on the board.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a to-do item assigned to a collector.
type Task struct {
	TaskID      string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  string       `json:"assignedTo"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AuditFields
}

// AssetType groups company property.
type AssetType string

const (
	AssetVehicle     AssetType = "Vehicle"
	AssetElectronics AssetType = "Electronics"
	AssetFurniture   AssetType = "Furniture"
	AssetOther       AssetType = "Other"
)

func (t AssetType) IsValid() bool {
	switch t {
	case AssetVehicle, AssetElectronics, AssetFurniture, AssetOther:
		return true
	}
	return false
}

// AssetStatus is the physical condition of an asset.
type AssetStatus string

const (
	AssetGood        AssetStatus = "Good"
	AssetMaintenance AssetStatus = "Maintenance"
	AssetLost        AssetStatus = "Lost"
	AssetDisposed    AssetStatus = "Disposed"
)

func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetGood, AssetMaintenance, AssetLost, AssetDisposed:
		return true
	}
	return false
}

// UnassignedAsset marks property not held by any collector.
const UnassignedAsset = "Unassigned"

// Asset is a piece of company property.
type Asset struct {
	AssetID      string          `json:"id"`
	Name         string          `json:"name"`
	Type         AssetType       `json:"type"`
	Value        decimal.Decimal `json:"value"`
	AssignedTo   string          `json:"assignedTo"`
	Status       AssetStatus     `json:"status"`
	PurchaseDate *time.Time      `json:"purchaseDate,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	AuditFields
}
