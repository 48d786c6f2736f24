package attendance

import (
	"time"
)

// LatePredicate decides whether a shift that opened at startWork counts as
// late. The default policy has no lateness rule, so summaries are never
// flagged late unless a predicate is configured.
type LatePredicate func(startWork time.Time) bool

// Policy holds the configurable attendance rules. The zero value is not
// usable; construct with DefaultPolicy and override as needed.
type Policy struct {
	// Workdays on which start_work is accepted.
	Workdays map[time.Weekday]bool

	// StartHour is the earliest local hour at which start_work is accepted.
	StartHour int

	// StandardShiftMinutes is the full-shift threshold for under_hours.
	StandardShiftMinutes int

	// ShiftScanLimit bounds the backward scan when reconstructing a shift.
	ShiftScanLimit int

	// Location is the reference timezone for the weekday/hour guard and
	// for bucketing shifts into calendar dates.
	Location *time.Location

	IsLate LatePredicate
}

func DefaultPolicy() Policy {
	return Policy{
		Workdays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		StartHour:            15,
		StandardShiftMinutes: 480,
		ShiftScanLimit:       20,
		Location:             time.UTC,
	}
}

func (p Policy) WorkdayAllowed(d time.Weekday) bool {
	return p.Workdays[d]
}
