package report

import (
	"context"

	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
)

// Service is the aggregation engine: read-only roll-ups over record sets the
// repositories resolve. Empty inputs yield zero-valued summaries, never
// errors.
type Service interface {
	// MySummary computes one employee's summary for a month.
	MySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)

	// TeamSummary computes the org-wide monthly summary with department
	// breakdown.
	TeamSummary(ctx context.Context, month, year int) (TeamSummary, error)

	// TodayStatusForAll joins every employee against today's records.
	TodayStatusForAll(ctx context.Context) ([]EmployeeTodayStatus, error)

	// EmployeeDashboard assembles the personal dashboard.
	EmployeeDashboard(ctx context.Context, employeeID string) (EmployeeDashboard, error)

	// ManagerDashboard assembles the team dashboard: head counts, weekly
	// trend, department breakdown, and today's absentees.
	ManagerDashboard(ctx context.Context) (ManagerDashboard, error)

	// Export flattens records matching the filter into tabular rows.
	Export(ctx context.Context, filter attendance.Filter) ([]ExportRow, error)
}
