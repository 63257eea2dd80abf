package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Query errors
	ErrInvalidRange = errors.New("end date must not be before start date")

	// ErrRecordConflict surfaces a uniqueness violation from storage: a
	// second record for the same (employee, day) lost the race.
	ErrRecordConflict = errors.New("attendance record already exists for this day")

	ErrRecordNotFound = errors.New("attendance record not found")
)
