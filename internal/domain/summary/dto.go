package summary

import (
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// SUMMARY DTOs
// ========================================

type SummaryFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
	SortOrder  string
}

func (f *SummaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortOrder != "" && !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	EmployeeEmail     *string `json:"employee_email,omitempty"`
	Date              string  `json:"date"`
	TotalWorkMinutes  int     `json:"total_work_minutes"`
	TotalBreakMinutes int     `json:"total_break_minutes"`
	IsLate            bool    `json:"is_late"`
	UnderHours        bool    `json:"under_hours"`
	StatusColor       string  `json:"status_color"`
}

type ListSummariesResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Summaries  []SummaryResponse `json:"summaries"`
}

type MonthlyReportResponse struct {
	Year              int               `json:"year"`
	Month             int               `json:"month"`
	TotalWorkMinutes  int               `json:"total_work_minutes"`
	TotalBreakMinutes int               `json:"total_break_minutes"`
	DaysWorked        int               `json:"days_worked"`
	DaysUnderHours    int               `json:"days_under_hours"`
	DaysLate          int               `json:"days_late"`
	Summaries         []SummaryResponse `json:"summaries"`
}
