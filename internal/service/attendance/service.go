package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/summary"
)

// statusWindow is the trailing window searched for the active session's
// start_work record. Using the global last action plus this window, rather
// than a calendar-day query, is what lets a shift span midnight.
const statusWindow = 24 * time.Hour

type AttendanceServiceImpl struct {
	attendance.ActionLogRepository
	summarizer summary.SummaryService
	policy     attendance.Policy
	now        func() time.Time
}

func NewAttendanceService(
	actionLogRepo attendance.ActionLogRepository,
	summarizer summary.SummaryService,
	policy attendance.Policy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		ActionLogRepository: actionLogRepo,
		summarizer:          summarizer,
		policy:              policy,
		now:                 time.Now,
	}
}

// SubmitAction implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitAction(ctx context.Context, req attendance.SubmitActionRequest) (attendance.ActionRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ActionRecordResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.ActionRecordResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return attendance.ActionRecordResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	now := a.now().UTC()
	actionType := attendance.ActionType(req.ActionType)

	status, err := a.resolveStatus(ctx, employeeID, now)
	if err != nil {
		return attendance.ActionRecordResponse{}, fmt.Errorf("failed to resolve current status: %w", err)
	}

	if err := a.validateTransition(actionType, status, now); err != nil {
		return attendance.ActionRecordResponse{}, err
	}

	rec, err := a.ActionLogRepository.Append(ctx, attendance.ActionRecord{
		EmployeeID: employeeID,
		ActionType: actionType,
		Timestamp:  now,
	})
	if err != nil {
		return attendance.ActionRecordResponse{}, err
	}

	// The transition is durable at this point. Summarization is best-effort:
	// a failure leaves the date without a report but never fails the action.
	if actionType == attendance.ActionEndWork {
		if _, err := a.summarizer.SummarizeShift(ctx, employeeID, rec); err != nil {
			slog.Error("failed to summarize shift after end_work",
				"employee_id", employeeID,
				"end_work_id", rec.ID,
				"error", err,
			)
		}
	}

	return toActionRecordResponse(rec), nil
}

// GetStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetStatus(ctx context.Context) (attendance.StatusResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return attendance.StatusResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	status, err := a.resolveStatus(ctx, employeeID, a.now().UTC())
	if err != nil {
		// Status is advisory. Degrade to the off-shift default rather than
		// propagating a store failure on the read path.
		slog.Warn("degrading status to default after store failure",
			"employee_id", employeeID,
			"error", err,
		)
		return attendance.StatusResponse{}, nil
	}

	return toStatusResponse(status), nil
}

// GetTodayLogs implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayLogs(ctx context.Context) ([]attendance.ActionRecordResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return nil, fmt.Errorf("employee_id claim is missing or invalid")
	}

	nowLocal := a.now().In(a.policy.Location)
	dayStart := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, a.policy.Location)
	dayEnd := dayStart.Add(24 * time.Hour)

	records, err := a.ActionLogRepository.QueryRange(ctx, employeeID, attendance.RangeFilter{
		From:  &dayStart,
		To:    &dayEnd,
		Order: attendance.SortAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query today's logs: %w", err)
	}

	responses := make([]attendance.ActionRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toActionRecordResponse(rec))
	}

	return responses, nil
}

// resolveStatus derives the employee's current state from the log. The last
// record alone decides working/on-break; the session anchor is the most
// recent start_work inside the trailing window.
func (a *AttendanceServiceImpl) resolveStatus(ctx context.Context, employeeID string, now time.Time) (attendance.EmployeeStatus, error) {
	last, err := a.ActionLogRepository.MostRecent(ctx, employeeID)
	if err != nil {
		return attendance.EmployeeStatus{}, err
	}
	if last == nil {
		return attendance.EmployeeStatus{}, nil
	}

	status := attendance.EmployeeStatus{
		IsWorking:  last.ActionType == attendance.ActionStartWork || last.ActionType == attendance.ActionEndBreak,
		IsOnBreak:  last.ActionType == attendance.ActionStartBreak,
		LastAction: &last.ActionType,
	}

	if !status.IsWorking && !status.IsOnBreak {
		return status, nil
	}

	from := now.Add(-statusWindow)
	recent, err := a.ActionLogRepository.QueryRange(ctx, employeeID, attendance.RangeFilter{
		From:  &from,
		To:    &now,
		Order: attendance.SortDesc,
	})
	if err != nil {
		return attendance.EmployeeStatus{}, err
	}

	for _, rec := range recent {
		if rec.ActionType == attendance.ActionStartWork {
			ts := rec.Timestamp
			status.StartWorkTime = &ts
			return status, nil
		}
	}

	// An active session with no start_work in the trailing window indicates
	// inconsistent history. Anchor on the last record so callers still get a
	// usable answer, but flag it.
	slog.Warn("no start_work found in trailing window, defaulting session anchor to last action",
		"employee_id", employeeID,
		"last_action", string(last.ActionType),
		"last_timestamp", last.Timestamp,
	)
	ts := last.Timestamp
	status.StartWorkTime = &ts

	return status, nil
}

// validateTransition is the attendance state machine. Every (state, action)
// pair either passes or returns the sentinel for the specific violated rule.
func (a *AttendanceServiceImpl) validateTransition(actionType attendance.ActionType, status attendance.EmployeeStatus, now time.Time) error {
	switch actionType {
	case attendance.ActionStartWork:
		if status.IsWorking || status.IsOnBreak {
			return attendance.ErrWorkAlreadyStarted
		}
		local := now.In(a.policy.Location)
		if !a.policy.WorkdayAllowed(local.Weekday()) {
			return attendance.ErrWorkdayNotAllowed
		}
		if local.Hour() < a.policy.StartHour {
			return fmt.Errorf("%w: work can only start from %02d:00", attendance.ErrTooEarlyToStart, a.policy.StartHour)
		}
	case attendance.ActionStartBreak:
		if !status.IsWorking {
			return attendance.ErrBreakBeforeWork
		}
	case attendance.ActionEndBreak:
		if !status.IsOnBreak {
			return attendance.ErrBreakNotActive
		}
	case attendance.ActionEndWork:
		if status.IsOnBreak {
			return attendance.ErrEndWorkDuringBreak
		}
		if !status.IsWorking {
			return attendance.ErrWorkNotStarted
		}
	default:
		return attendance.ErrUnknownActionType
	}

	return nil
}

func toActionRecordResponse(rec attendance.ActionRecord) attendance.ActionRecordResponse {
	return attendance.ActionRecordResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		ActionType: string(rec.ActionType),
		Timestamp:  rec.Timestamp.Format(time.RFC3339),
	}
}

func toStatusResponse(status attendance.EmployeeStatus) attendance.StatusResponse {
	resp := attendance.StatusResponse{
		IsWorking: status.IsWorking,
		IsOnBreak: status.IsOnBreak,
	}
	if status.LastAction != nil {
		action := string(*status.LastAction)
		resp.LastAction = &action
	}
	if status.StartWorkTime != nil {
		ts := status.StartWorkTime.Format(time.RFC3339)
		resp.StartWorkTime = &ts
	}
	return resp
}
