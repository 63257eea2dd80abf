package attendance

import (
	"context"
	"time"
)

// Service is the transaction engine: the record lifecycle for one employee
// per day plus the bounded read paths. Callers supply the already
// authenticated employee identity; the engine performs no authentication.
type Service interface {
	CheckIn(ctx context.Context, employeeID string) (CheckInResponse, error)
	CheckOut(ctx context.Context, employeeID string) (CheckOutResponse, error)
	GetTodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error)

	// History returns one employee's records, optionally scoped to a month.
	History(ctx context.Context, employeeID string, filter HistoryFilter) ([]RecordResponse, error)

	// List returns records across employees matching the filter.
	List(ctx context.Context, filter Filter) ([]RecordResponse, error)

	// UpdateRecord corrects one record by identifier. Hours are re-derived
	// from the resulting timestamps.
	UpdateRecord(ctx context.Context, id string, req UpdateRequest) (RecordResponse, error)

	// MarkAbsentees writes absent records for every employee without a
	// record on the given day and returns how many were created.
	MarkAbsentees(ctx context.Context, day time.Time) (int, error)
}
