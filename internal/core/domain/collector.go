package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollectorRole tags an actor for the presentation layer.
type CollectorRole string

const (
	RoleAdmin     CollectorRole = "admin"
	RoleCollector CollectorRole = "collector"
)

// IsValid reports whether r is a known role.
func (r CollectorRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCollector
}

// The administrator seeded into an empty store.
const (
	DefaultAdminID   = "admin"
	DefaultAdminName = "Admin"
	DefaultAdminArea = "HQ"
)

// Collector is a field agent or office employee. Area links a collector to
// the loans on the same route.
type Collector struct {
	CollectorID string          `json:"id"`
	Name        string          `json:"name"`
	Area        string          `json:"area"`
	Role        CollectorRole   `json:"role"`
	DailyRate   decimal.Decimal `json:"dailyRate"`
	MonthlyRate decimal.Decimal `json:"monthlyRate"`
	Quota       decimal.Decimal `json:"quota"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	AuditFields
}

// IsAdmin reports whether the collector is an administrator. Administrators
// are excluded from payroll and rankings.
func (c Collector) IsAdmin() bool {
	return c.Role == RoleAdmin
}
