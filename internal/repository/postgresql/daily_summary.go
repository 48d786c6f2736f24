package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/summary"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
)

type summaryRepository struct {
	db *database.DB
}

// Upsert implements summary.SummaryRepository.
func (r *summaryRepository) Upsert(ctx context.Context, s summary.DailySummary) (summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_summaries (
			employee_id, date, total_work_minutes, total_break_minutes,
			is_late, under_hours, status_color
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			total_work_minutes = EXCLUDED.total_work_minutes,
			total_break_minutes = EXCLUDED.total_break_minutes,
			is_late = EXCLUDED.is_late,
			under_hours = EXCLUDED.under_hours,
			status_color = EXCLUDED.status_color,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID,
		s.Date,
		s.TotalWorkMinutes,
		s.TotalBreakMinutes,
		s.IsLate,
		s.UnderHours,
		s.StatusColor,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return summary.DailySummary{}, fmt.Errorf("failed to upsert daily summary: %w", err)
	}

	return s, nil
}

// GetByEmployeeAndDate implements summary.SummaryRepository.
func (r *summaryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, total_work_minutes, total_break_minutes,
			   is_late, under_hours, status_color, created_at, updated_at
		FROM daily_summaries
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var s summary.DailySummary
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&s.ID, &s.EmployeeID, &s.Date, &s.TotalWorkMinutes, &s.TotalBreakMinutes,
		&s.IsLate, &s.UnderHours, &s.StatusColor, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no summary for this date
		}
		return nil, fmt.Errorf("failed to get daily summary: %w", err)
	}

	return &s, nil
}

// List implements summary.SummaryRepository.
func (r *summaryRepository) List(ctx context.Context, filter summary.SummaryFilter) ([]summary.DailySummary, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM daily_summaries s WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily summaries: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			s.id, s.employee_id, s.date, s.total_work_minutes, s.total_break_minutes,
			s.is_late, s.under_hours, s.status_color, s.created_at, s.updated_at,
			e.name AS employee_name,
			e.email AS employee_email
		FROM daily_summaries s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.date %s
	`, baseWhere, sortOrder)

	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []summary.DailySummary
	for rows.Next() {
		var s summary.DailySummary
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Date, &s.TotalWorkMinutes, &s.TotalBreakMinutes,
			&s.IsLate, &s.UnderHours, &s.StatusColor, &s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName, &s.EmployeeEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan daily summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, total, nil
}

func NewSummaryRepository(db *database.DB) summary.SummaryRepository {
	return &summaryRepository{db: db}
}
