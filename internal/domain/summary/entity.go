package summary

import (
	"time"
)

type StatusColor string

const (
	ColorGreen  StatusColor = "green"
	ColorYellow StatusColor = "yellow"
	ColorRed    StatusColor = "red"
)

// DailySummary is the per-shift attendance report, keyed uniquely by
// (employee_id, date) where date is the shift's start date. A shift that
// crosses midnight is keyed to the day it began.
type DailySummary struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	TotalWorkMinutes  int
	TotalBreakMinutes int
	IsLate            bool
	UnderHours        bool
	StatusColor       StatusColor
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
}
