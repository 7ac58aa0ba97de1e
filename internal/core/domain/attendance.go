package domain

import "time"

// AttendanceStatus is an employee's presence on a given day.
type AttendanceStatus string

const (
	Present AttendanceStatus = "Present"
	Absent  AttendanceStatus = "Absent"
	RestDay AttendanceStatus = "Rest Day"
)

// IsValid reports whether s is a known status.
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case Present, Absent, RestDay:
		return true
	}
	return false
}

// Attendance is unique per (EmployeeID, Date).
type Attendance struct {
	AttendanceID string           `json:"id"`
	Date         time.Time        `json:"date"`
	EmployeeID   string           `json:"empId"`
	Status       AttendanceStatus `json:"status"`
	MarkedBy     string           `json:"markedBy,omitempty"`
}

// AttendanceFilter narrows an attendance listing. Month is YYYY-MM.
type AttendanceFilter struct {
	EmployeeID string
	Month      string
}

// Matches reports whether a passes the filter.
func (f AttendanceFilter) Matches(a Attendance) bool {
	if f.EmployeeID != "" && a.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Month != "" && a.Date.Format("2006-01") != f.Month {
		return false
	}
	return true
}
