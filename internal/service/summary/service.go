package summary

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/summary"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
)

type SummaryServiceImpl struct {
	db database.TxManager
	attendance.ActionLogRepository
	summary.SummaryRepository
	policy attendance.Policy
}

func NewSummaryService(
	db database.TxManager,
	actionLogRepo attendance.ActionLogRepository,
	summaryRepo summary.SummaryRepository,
	policy attendance.Policy,
) summary.SummaryService {
	return &SummaryServiceImpl{
		db:                  db,
		ActionLogRepository: actionLogRepo,
		SummaryRepository:   summaryRepo,
		policy:              policy,
	}
}

// SummarizeShift implements summary.SummaryService.
//
// The shift is recovered by walking a bounded window of recent records
// backward from the closing end_work until its opening start_work. A foreign
// end_work inside the window means the history is not a single well-formed
// shift and reconstruction stops.
func (s *SummaryServiceImpl) SummarizeShift(ctx context.Context, employeeID string, endWork attendance.ActionRecord) (summary.DailySummary, error) {
	var result summary.DailySummary
	err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		result, txErr = s.summarize(txCtx, employeeID, endWork)
		return txErr
	})
	if err != nil {
		return summary.DailySummary{}, err
	}
	return result, nil
}

// summarize runs the reconstruction and the upsert on one transaction so the
// backward scan and the written summary see a consistent log.
func (s *SummaryServiceImpl) summarize(ctx context.Context, employeeID string, endWork attendance.ActionRecord) (summary.DailySummary, error) {
	to := endWork.Timestamp
	recent, err := s.ActionLogRepository.QueryRange(ctx, employeeID, attendance.RangeFilter{
		To:    &to,
		Order: attendance.SortDesc,
		Limit: s.policy.ShiftScanLimit,
	})
	if err != nil {
		return summary.DailySummary{}, fmt.Errorf("failed to fetch records for shift reconstruction: %w", err)
	}

	// Accumulate records into chronological order until the opening
	// start_work is found.
	var shift []attendance.ActionRecord
	var opening *attendance.ActionRecord
	for _, rec := range recent {
		if rec.ActionType == attendance.ActionEndWork && rec.ID != endWork.ID {
			return summary.DailySummary{}, fmt.Errorf("%w: found earlier end_work before start_work", summary.ErrShiftNotReconstructed)
		}
		shift = append([]attendance.ActionRecord{rec}, shift...)
		if rec.ActionType == attendance.ActionStartWork {
			openingRec := rec
			opening = &openingRec
			break
		}
	}
	if opening == nil {
		return summary.DailySummary{}, fmt.Errorf("%w: no start_work within the last %d records", summary.ErrShiftNotReconstructed, s.policy.ShiftScanLimit)
	}

	totalDurationMinutes := endWork.Timestamp.Sub(opening.Timestamp).Minutes()

	// Pair each start_break with the next end_break. An unpaired trailing
	// start_break contributes nothing; the state machine forbids it, but a
	// malformed history must not break summarization.
	var breakMinutes float64
	var pendingBreak *time.Time
	for _, rec := range shift {
		switch rec.ActionType {
		case attendance.ActionStartBreak:
			ts := rec.Timestamp
			pendingBreak = &ts
		case attendance.ActionEndBreak:
			if pendingBreak != nil {
				breakMinutes += rec.Timestamp.Sub(*pendingBreak).Minutes()
				pendingBreak = nil
			}
		}
	}

	totalWorkMinutes := int(math.Round(totalDurationMinutes - breakMinutes))
	if totalWorkMinutes < 0 {
		totalWorkMinutes = 0
	}
	totalBreakMinutes := int(math.Round(breakMinutes))

	underHours := totalWorkMinutes < s.policy.StandardShiftMinutes
	isLate := s.policy.IsLate != nil && s.policy.IsLate(opening.Timestamp)

	statusColor := summary.ColorGreen
	if isLate {
		statusColor = summary.ColorYellow
	}
	if underHours {
		statusColor = summary.ColorRed
	}

	// Key by the shift's start date so overnight shifts land on the day
	// they began.
	startLocal := opening.Timestamp.In(s.policy.Location)
	date := time.Date(startLocal.Year(), startLocal.Month(), startLocal.Day(), 0, 0, 0, 0, time.UTC)

	result, err := s.SummaryRepository.Upsert(ctx, summary.DailySummary{
		EmployeeID:        employeeID,
		Date:              date,
		TotalWorkMinutes:  totalWorkMinutes,
		TotalBreakMinutes: totalBreakMinutes,
		IsLate:            isLate,
		UnderHours:        underHours,
		StatusColor:       statusColor,
	})
	if err != nil {
		return summary.DailySummary{}, fmt.Errorf("failed to upsert daily summary: %w", err)
	}

	return result, nil
}

// GetMySummary implements summary.SummaryService.
func (s *SummaryServiceImpl) GetMySummary(ctx context.Context, date string) (summary.SummaryResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return summary.SummaryResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return summary.SummaryResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return summary.SummaryResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	result, err := s.SummaryRepository.GetByEmployeeAndDate(ctx, employeeID, parsed)
	if err != nil {
		return summary.SummaryResponse{}, fmt.Errorf("failed to get daily summary: %w", err)
	}
	if result == nil {
		return summary.SummaryResponse{}, summary.ErrSummaryNotFound
	}

	return mapSummaryToResponse(*result), nil
}

// GetMySummaries implements summary.SummaryService.
func (s *SummaryServiceImpl) GetMySummaries(ctx context.Context, startDate, endDate string) ([]summary.SummaryResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return nil, fmt.Errorf("employee_id claim is missing or invalid")
	}

	filter := summary.SummaryFilter{
		EmployeeID: &employeeID,
		StartDate:  &startDate,
		EndDate:    &endDate,
		SortOrder:  "asc",
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	summaries, _, err := s.SummaryRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list my summaries: %w", err)
	}

	responses := make([]summary.SummaryResponse, 0, len(summaries))
	for _, item := range summaries {
		responses = append(responses, mapSummaryToResponse(item))
	}

	return responses, nil
}

// GetMyMonthlyReport implements summary.SummaryService.
func (s *SummaryServiceImpl) GetMyMonthlyReport(ctx context.Context, year, month int) (summary.MonthlyReportResponse, error) {
	if year < 2000 || year > 2200 || month < 1 || month > 12 {
		return summary.MonthlyReportResponse{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "year and month must identify a valid calendar month",
		}}
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	startDate := firstDay.Format("2006-01-02")
	endDate := lastDay.Format("2006-01-02")

	summaries, err := s.GetMySummaries(ctx, startDate, endDate)
	if err != nil {
		return summary.MonthlyReportResponse{}, err
	}

	report := summary.MonthlyReportResponse{
		Year:      year,
		Month:     month,
		Summaries: summaries,
	}
	for _, item := range summaries {
		report.TotalWorkMinutes += item.TotalWorkMinutes
		report.TotalBreakMinutes += item.TotalBreakMinutes
		report.DaysWorked++
		if item.UnderHours {
			report.DaysUnderHours++
		}
		if item.IsLate {
			report.DaysLate++
		}
	}

	return report, nil
}

// ListSummaries implements summary.SummaryService.
func (s *SummaryServiceImpl) ListSummaries(ctx context.Context, filter summary.SummaryFilter) (summary.ListSummariesResponse, error) {
	if err := filter.Validate(); err != nil {
		return summary.ListSummariesResponse{}, err
	}

	summaries, total, err := s.SummaryRepository.List(ctx, filter)
	if err != nil {
		return summary.ListSummariesResponse{}, fmt.Errorf("failed to list summaries: %w", err)
	}

	responses := make([]summary.SummaryResponse, 0, len(summaries))
	for _, item := range summaries {
		responses = append(responses, mapSummaryToResponse(item))
	}

	totalPages := 0
	showing := "0 of 0"
	if filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
		if total > 0 {
			showing = fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
		}
	}

	return summary.ListSummariesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Summaries:  responses,
	}, nil
}

// mapSummaryToResponse converts a DailySummary entity to SummaryResponse
func mapSummaryToResponse(s summary.DailySummary) summary.SummaryResponse {
	return summary.SummaryResponse{
		ID:                s.ID,
		EmployeeID:        s.EmployeeID,
		EmployeeName:      s.EmployeeName,
		EmployeeEmail:     s.EmployeeEmail,
		Date:              s.Date.Format("2006-01-02"),
		TotalWorkMinutes:  s.TotalWorkMinutes,
		TotalBreakMinutes: s.TotalBreakMinutes,
		IsLate:            s.IsLate,
		UnderHours:        s.UnderHours,
		StatusColor:       string(s.StatusColor),
	}
}
