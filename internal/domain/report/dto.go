package report

import (
	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
)

// UnknownDepartment groups records whose employee cannot be resolved in the
// directory.
const UnknownDepartment = "Unknown"

// Summary is the per-scope roll-up of a record set: counts by status plus
// the hour total, rounded once at the end.
type Summary struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"half_day"`
	TotalHours float64 `json:"total_hours"`
}

// MonthlySummary is one employee's Summary for a month.
type MonthlySummary struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	Summary
}

// DepartmentCounts holds per-department status counts.
type DepartmentCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"half_day"`
}

// TeamSummary is the org-wide monthly roll-up with department breakdown.
type TeamSummary struct {
	Month          int                         `json:"month"`
	Year           int                         `json:"year"`
	TotalEmployees int                         `json:"total_employees"`
	TotalRecords   int                         `json:"total_records"`
	Present        int                         `json:"present"`
	Absent         int                         `json:"absent"`
	Late           int                         `json:"late"`
	HalfDay        int                         `json:"half_day"`
	DepartmentWise map[string]DepartmentCounts `json:"department_wise"`
}

// TrendPoint is one day of the weekly trend. Present counts both present and
// late records; absent is the remainder of the head count.
type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// AbsentEmployee identifies an employee with no record today or one whose
// status is explicitly absent.
type AbsentEmployee struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Department   string `json:"department"`
}

// EmployeeTodayStatus joins an employee against today's record; employees
// without one default to the absent, not-checked-in view.
type EmployeeTodayStatus struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeCode string            `json:"employee_code"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Department   string            `json:"department"`
	CheckedIn    bool              `json:"checked_in"`
	CheckedOut   bool              `json:"checked_out"`
	CheckInTime  *string           `json:"check_in_time,omitempty"`
	CheckOutTime *string           `json:"check_out_time,omitempty"`
	Status       attendance.Status `json:"status"`
}

// EmployeeDashboard is the personal dashboard payload: today's view, the
// current month's summary, and the last week of records.
type EmployeeDashboard struct {
	TodayStatus      attendance.TodayStatusResponse `json:"today_status"`
	MonthSummary     Summary                        `json:"month_summary"`
	RecentAttendance []attendance.RecordResponse    `json:"recent_attendance"`
}

// ManagerDashboard is the team dashboard payload.
type ManagerDashboard struct {
	TotalEmployees  int                         `json:"total_employees"`
	TodayAttendance TodayCounts                 `json:"today_attendance"`
	WeeklyTrend     []TrendPoint                `json:"weekly_trend"`
	DepartmentWise  map[string]DepartmentCounts `json:"department_wise"`
	AbsentEmployees []AbsentEmployee            `json:"absent_employees"`
}

// TodayCounts is today's head count split.
type TodayCounts struct {
	Present      int `json:"present"`
	Absent       int `json:"absent"`
	LateArrivals int `json:"late_arrivals"`
}
