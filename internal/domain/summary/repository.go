package summary

import (
	"context"
	"time"
)

// SummaryRepository stores daily summaries keyed by (employee_id, date).
type SummaryRepository interface {
	// Upsert creates or overwrites the summary for the record's key.
	// Re-summarizing the same shift is an idempotent overwrite.
	Upsert(ctx context.Context, s DailySummary) (DailySummary, error)

	// GetByEmployeeAndDate returns the summary for the key, or nil when no
	// shift has been summarized for that date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*DailySummary, error)

	// List returns summaries matching the filter with employee identity
	// joined in, plus the total count for pagination.
	List(ctx context.Context, filter SummaryFilter) ([]DailySummary, int64, error)
}
