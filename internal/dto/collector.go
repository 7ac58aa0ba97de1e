package dto

import (
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveCollectorRequest creates a collector, or replaces one when ID is set.
type SaveCollectorRequest struct {
	ID          string               `json:"id"`
	Name        string               `json:"name" binding:"required"`
	Area        string               `json:"area" binding:"required"`
	Role        domain.CollectorRole `json:"role"`
	DailyRate   decimal.Decimal      `json:"dailyRate" binding:"dnonnegative"`
	MonthlyRate decimal.Decimal      `json:"monthlyRate" binding:"dnonnegative"`
	Quota       decimal.Decimal      `json:"quota" binding:"dnonnegative"`
	StartDate   string               `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
}

// MarkAttendanceRequest sets an employee's status for a day.
type MarkAttendanceRequest struct {
	Date       string                  `json:"date" binding:"required,datetime=2006-01-02"`
	EmployeeID string                  `json:"empId" binding:"required"`
	Status     domain.AttendanceStatus `json:"status" binding:"required"`
}

// ProcessPayrollRequest names the month to process.
type ProcessPayrollRequest struct {
	Month string `json:"month" binding:"required,datetime=2006-01"`
}

// ListAttendanceParams filters the attendance listing.
type ListAttendanceParams struct {
	Month      string `form:"month" binding:"omitempty,datetime=2006-01"`
	EmployeeID string `form:"empId"`
}

// PayrollMonthParams selects a payroll month. Empty lists every month.
type PayrollMonthParams struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}
