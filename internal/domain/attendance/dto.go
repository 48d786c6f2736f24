package attendance

import (
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type SubmitActionRequest struct {
	ActionType string `json:"action_type"`
}

func (r *SubmitActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ActionType) {
		errs = append(errs, validator.ValidationError{
			Field:   "action_type",
			Message: "action_type is required",
		})
	} else if !ActionType(r.ActionType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "action_type",
			Message: "action_type must be one of: start_work, end_work, start_break, end_break",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ActionRecordResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	ActionType string `json:"action_type"`
	Timestamp  string `json:"timestamp"`
}

type StatusResponse struct {
	IsWorking     bool    `json:"is_working"`
	IsOnBreak     bool    `json:"is_on_break"`
	LastAction    *string `json:"last_action"`
	StartWorkTime *string `json:"start_work_time"`
}
