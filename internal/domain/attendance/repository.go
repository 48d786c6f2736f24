package attendance

import (
	"context"
	"time"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// RangeFilter selects a slice of an employee's action history. From and To
// are inclusive bounds; a nil bound is open. Limit of 0 means no limit.
type RangeFilter struct {
	From  *time.Time
	To    *time.Time
	Order SortOrder
	Limit int
}

// ActionLogRepository is the append-only attendance log store.
type ActionLogRepository interface {
	// Append inserts a new action record and returns it with its assigned
	// ID. Returns ErrConflict when a store-side uniqueness constraint
	// rejects the write.
	Append(ctx context.Context, rec ActionRecord) (ActionRecord, error)

	// MostRecent returns the employee's latest record by timestamp, or nil
	// when the employee has no history.
	MostRecent(ctx context.Context, employeeID string) (*ActionRecord, error)

	// QueryRange returns the employee's records matching the filter.
	QueryRange(ctx context.Context, employeeID string, filter RangeFilter) ([]ActionRecord, error)
}
