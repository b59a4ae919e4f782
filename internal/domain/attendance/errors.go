package attendance

import "errors"

// Attendance domain errors
var (
	// Event store errors
	ErrEventStoreUnavailable = errors.New("attendance event store is unavailable")
	ErrInvalidEventQuery     = errors.New("invalid attendance event query")

	// View errors
	ErrInvalidKindFilter = errors.New("kind filter must be one of: ALL, IN, OUT")
	ErrInvalidDateFilter = errors.New("date filter must be one of: ALL, TODAY")
	ErrInvalidViewMode   = errors.New("mode must be one of: DETAILED, CONSOLIDATED")
	ErrInvalidTimezone   = errors.New("unknown timezone")
)
