package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance actions. The
// acting employee is taken from the request's JWT claims.
type AttendanceService interface {
	// SubmitAction validates the requested action against the employee's
	// current state and appends it to the log. An accepted end_work also
	// triggers shift summarization; summarization failures are logged and
	// never surfaced to the submitting caller.
	SubmitAction(ctx context.Context, req SubmitActionRequest) (ActionRecordResponse, error)

	// GetStatus returns the employee's derived work/break state. Status is
	// advisory: on store failure it degrades to the all-false status.
	GetStatus(ctx context.Context) (StatusResponse, error)

	// GetTodayLogs returns the employee's action records for the current
	// calendar day, oldest first.
	GetTodayLogs(ctx context.Context) ([]ActionRecordResponse, error)
}
