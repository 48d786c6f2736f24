package response

import (
	"errors"
	"net/http"

	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/summary"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance guard violations surface the specific rule text.
	case errors.Is(err, attendance.ErrWorkAlreadyStarted),
		errors.Is(err, attendance.ErrWorkdayNotAllowed),
		errors.Is(err, attendance.ErrTooEarlyToStart),
		errors.Is(err, attendance.ErrBreakBeforeWork),
		errors.Is(err, attendance.ErrBreakNotActive),
		errors.Is(err, attendance.ErrEndWorkDuringBreak),
		errors.Is(err, attendance.ErrWorkNotStarted),
		errors.Is(err, attendance.ErrUnknownActionType):
		UnprocessableEntity(w, err.Error())

	// Transient write conflict; the client may retry the submit cycle.
	case errors.Is(err, attendance.ErrConflict):
		Conflict(w, "Conflicting attendance submission, please retry")

	// Summary domain errors
	case errors.Is(err, summary.ErrSummaryNotFound):
		NotFound(w, "No summary for this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
