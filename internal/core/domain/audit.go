package domain

import "time"

// AuditAction classifies an audit log entry.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditSystem AuditAction = "SYSTEM"
)

// SystemActor attributes automated actions.
const SystemActor = "SYSTEM"

// AuditLog is write-only; business logic never reads it back.
type AuditLog struct {
	AuditID   string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	User      string      `json:"user"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
}
