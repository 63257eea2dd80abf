package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The store enforces
// the one-record-per-(employee, day) invariant; Create surfaces a violation
// as ErrRecordConflict so concurrent check-ins resolve to one winner.
type Repository interface {
	// Create inserts a new record. Returns ErrRecordConflict when a record
	// for the same (employee, day) already exists.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByEmployeeAndDate returns the record for one employee on one
	// calendar day, or nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*Record, error)

	// GetByID returns one record by identifier, or nil when none exists.
	GetByID(ctx context.Context, id string) (*Record, error)

	// SetCheckIn stamps a check-in onto an existing record only while it has
	// none. Reports false when the record was already checked in.
	SetCheckIn(ctx context.Context, id string, checkIn time.Time, status Status) (bool, error)

	// SetCheckOut stamps a check-out onto a record only while it has none.
	// Reports false when the record was already checked out.
	SetCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (bool, error)

	// Update overwrites mutable fields of an existing record. Administrative
	// path; the only producer of the half-day status.
	Update(ctx context.Context, record Record) error

	// ListByEmployee returns one employee's records within [start, end],
	// newest first, capped at limit (0 means no cap).
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time, limit int) ([]Record, error)

	// ListRange returns all records within [start, end] with employee
	// details joined, newest first, capped at limit (0 means no cap).
	ListRange(ctx context.Context, start, end time.Time, limit int) ([]Record, error)

	// List returns records matching the filter with employee details
	// joined, newest first.
	List(ctx context.Context, filter Filter, start, end *time.Time) ([]Record, error)

	// BulkCreateAbsences inserts absent records, skipping any (employee,
	// day) pair that already has one.
	BulkCreateAbsences(ctx context.Context, records []Record) error
}
