package summary

import (
	"context"

	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
)

// SummaryService derives and serves daily summaries.
type SummaryService interface {
	// SummarizeShift reconstructs the shift closed by endWork via a bounded
	// backward scan of the action log and upserts its daily summary, keyed
	// by the shift's start date. Returns ErrShiftNotReconstructed when no
	// opening start_work is found within the scan bound.
	SummarizeShift(ctx context.Context, employeeID string, endWork attendance.ActionRecord) (DailySummary, error)

	// GetMySummary returns the authenticated employee's summary for a date.
	GetMySummary(ctx context.Context, date string) (SummaryResponse, error)

	// GetMySummaries returns the authenticated employee's summaries in a
	// date range, oldest first.
	GetMySummaries(ctx context.Context, startDate, endDate string) ([]SummaryResponse, error)

	// GetMyMonthlyReport aggregates the authenticated employee's summaries
	// for a calendar month.
	GetMyMonthlyReport(ctx context.Context, year, month int) (MonthlyReportResponse, error)

	// ListSummaries returns summaries across employees (admin view).
	ListSummaries(ctx context.Context, filter SummaryFilter) (ListSummariesResponse, error)
}
