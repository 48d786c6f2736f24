package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
)

type actionLogRepository struct {
	db *database.DB
}

// Append implements attendance.ActionLogRepository.
func (r *actionLogRepository) Append(ctx context.Context, rec attendance.ActionRecord) (attendance.ActionRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (employee_id, action_type, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.ActionType,
		rec.Timestamp,
	).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.ActionRecord{}, attendance.ErrConflict
		}
		return attendance.ActionRecord{}, fmt.Errorf("failed to append attendance log: %w", err)
	}

	return rec, nil
}

// MostRecent implements attendance.ActionLogRepository.
func (r *actionLogRepository) MostRecent(ctx context.Context, employeeID string) (*attendance.ActionRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, action_type, timestamp, created_at
		FROM attendance_logs
		WHERE employee_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var rec attendance.ActionRecord
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.ActionType, &rec.Timestamp, &rec.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no history yet
		}
		return nil, fmt.Errorf("failed to get most recent attendance log: %w", err)
	}

	return &rec, nil
}

// QueryRange implements attendance.ActionLogRepository.
func (r *actionLogRepository) QueryRange(ctx context.Context, employeeID string, filter attendance.RangeFilter) ([]attendance.ActionRecord, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND timestamp >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND timestamp <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	sortOrder := "ASC"
	if filter.Order == attendance.SortDesc {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, employee_id, action_type, timestamp, created_at
		FROM attendance_logs
		WHERE %s
		ORDER BY timestamp %s
	`, baseWhere, sortOrder)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance logs: %w", err)
	}
	defer rows.Close()

	var records []attendance.ActionRecord
	for rows.Next() {
		var rec attendance.ActionRecord
		err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.ActionType, &rec.Timestamp, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func NewActionLogRepository(db *database.DB) attendance.ActionLogRepository {
	return &actionLogRepository{db: db}
}
