package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatusPaid marks a processed payroll record.
const PayrollStatusPaid = "Paid"

// PayrollRecord freezes one employee's pay for a month. Month is YYYY-MM.
type PayrollRecord struct {
	RecordID     string          `json:"id"`
	Month        string          `json:"month"`
	EmployeeID   string          `json:"empId"`
	EmployeeName string          `json:"empName"`
	DaysPresent  int             `json:"daysPresent"`
	DailyRate    decimal.Decimal `json:"dailyRate"`
	GrossPay     decimal.Decimal `json:"grossPay"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetPay       decimal.Decimal `json:"netPay"`
	Status       string          `json:"status"`
	ProcessedAt  time.Time       `json:"date"`
	ProcessedBy  string          `json:"processedBy,omitempty"`
}

// PayrollLine is a computed, unsaved payroll row.
type PayrollLine struct {
	EmployeeID   string          `json:"empId"`
	EmployeeName string          `json:"empName"`
	DaysPresent  int             `json:"daysPresent"`
	DailyRate    decimal.Decimal `json:"dailyRate"`
	GrossPay     decimal.Decimal `json:"grossPay"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetPay       decimal.Decimal `json:"netPay"`
}

// PayrollPreview is the payroll for a month before (or after) processing.
type PayrollPreview struct {
	Month       string          `json:"month"`
	Lines       []PayrollLine   `json:"lines"`
	TotalPayout decimal.Decimal `json:"totalPayout"`
	Processed   bool            `json:"processed"`
}
