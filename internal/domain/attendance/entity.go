package attendance

import (
	"time"
)

// Status is the categorical attendance outcome for one calendar day.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	// StatusHalfDay is never derived by the check-in rule; it can only be
	// set through the administrative update path.
	StatusHalfDay Status = "half-day"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// CountsAsPresent reports whether the status counts toward head-count style
// coverage. Late arrivals still showed up, so they count.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// Record is one employee's attendance for one calendar day. Date carries
// midnight in the configured zone; the (EmployeeID, Date) pair is unique.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	TotalHours float64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO (joined from the employee directory)
	EmployeeCode       *string
	EmployeeName       *string
	EmployeeDepartment *string
}
