package summary

import "errors"

// Summary domain errors
var (
	// ErrShiftNotReconstructed means the backward scan hit its bound or a
	// foreign end_work before finding the shift's opening start_work. The
	// closing end_work is already durable; no summary is written.
	ErrShiftNotReconstructed = errors.New("could not reconstruct shift from action log")

	ErrSummaryNotFound = errors.New("daily summary not found")
)
