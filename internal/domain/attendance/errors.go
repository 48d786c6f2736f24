package attendance

import "errors"

// Attendance domain errors
var (
	// Transition guard violations. Each carries the specific rule text
	// shown to the employee.
	ErrWorkAlreadyStarted = errors.New("work already started")
	ErrWorkdayNotAllowed  = errors.New("work is not allowed on this day of the week")
	ErrTooEarlyToStart    = errors.New("too early to start work")
	ErrBreakBeforeWork    = errors.New("cannot start break before starting work")
	ErrBreakNotActive     = errors.New("cannot end break if break is not active")
	ErrEndWorkDuringBreak = errors.New("cannot end work while break is active")
	ErrWorkNotStarted     = errors.New("cannot end work if work has not started")
	ErrUnknownActionType  = errors.New("unknown action type")

	// ErrConflict is returned by the log store when a concurrent submission
	// collides with a uniqueness constraint. The caller may retry the whole
	// submit cycle since status may have changed.
	ErrConflict = errors.New("conflicting attendance log write")
)
