package attendance

import (
	"time"
)

type ActionType string

const (
	ActionStartWork  ActionType = "start_work"
	ActionEndWork    ActionType = "end_work"
	ActionStartBreak ActionType = "start_break"
	ActionEndBreak   ActionType = "end_break"
)

// Valid reports whether a is one of the four known action types.
func (a ActionType) Valid() bool {
	switch a {
	case ActionStartWork, ActionEndWork, ActionStartBreak, ActionEndBreak:
		return true
	}
	return false
}

// ActionRecord is a single entry in the append-only attendance log.
// Records are never mutated or deleted after creation.
type ActionRecord struct {
	ID         string
	EmployeeID string
	ActionType ActionType
	Timestamp  time.Time
	CreatedAt  time.Time
}

// EmployeeStatus is derived fresh from the action log on every query.
// It is never persisted.
type EmployeeStatus struct {
	IsWorking     bool
	IsOnBreak     bool
	LastAction    *ActionType
	StartWorkTime *time.Time
}
