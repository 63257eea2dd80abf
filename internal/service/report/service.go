package report

import (
	"context"
	"fmt"
	"time"

	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
	"github.com/stafftrack/attendance-backend-go/internal/domain/employee"
	"github.com/stafftrack/attendance-backend-go/internal/domain/report"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/clock"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/timewindow"
)

// ReportServiceImpl resolves record sets through the repositories and hands
// them to the pure aggregation functions.
type ReportServiceImpl struct {
	repo      attendance.Repository
	directory employee.Directory
	clock     clock.Clock
	loc       *time.Location
}

func NewReportService(
	repo attendance.Repository,
	directory employee.Directory,
	clk clock.Clock,
	loc *time.Location,
) report.Service {
	return &ReportServiceImpl{
		repo:      repo,
		directory: directory,
		clock:     clk,
		loc:       loc,
	}
}

// MySummary implements report.Service. Month and year default to the current
// month when zero.
func (s *ReportServiceImpl) MySummary(ctx context.Context, employeeID string, month, year int) (report.MonthlySummary, error) {
	now := s.clock.Now().In(s.loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	start, end := timewindow.MonthBounds(month, year, s.loc)
	records, err := s.repo.ListByEmployee(ctx, employeeID, start, end, 0)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to list records for summary: %w", err)
	}

	return report.MonthlySummary{
		Month:   month,
		Year:    year,
		Summary: Summarize(records),
	}, nil
}

// TeamSummary implements report.Service.
func (s *ReportServiceImpl) TeamSummary(ctx context.Context, month, year int) (report.TeamSummary, error) {
	now := s.clock.Now().In(s.loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	start, end := timewindow.MonthBounds(month, year, s.loc)
	records, err := s.repo.ListRange(ctx, start, end, 0)
	if err != nil {
		return report.TeamSummary{}, fmt.Errorf("failed to list records for team summary: %w", err)
	}

	totalEmployees, err := s.directory.CountByRole(ctx, employee.RoleEmployee)
	if err != nil {
		return report.TeamSummary{}, fmt.Errorf("failed to count employees: %w", err)
	}

	summary := Summarize(records)
	return report.TeamSummary{
		Month:          month,
		Year:           year,
		TotalEmployees: totalEmployees,
		TotalRecords:   len(records),
		Present:        summary.Present,
		Absent:         summary.Absent,
		Late:           summary.Late,
		HalfDay:        summary.HalfDay,
		DepartmentWise: DepartmentBreakdown(records),
	}, nil
}

// TodayStatusForAll implements report.Service.
func (s *ReportServiceImpl) TodayStatusForAll(ctx context.Context) ([]report.EmployeeTodayStatus, error) {
	employees, todaysRecords, err := s.todaySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return TodayStatusForAll(employees, todaysRecords), nil
}

// EmployeeDashboard implements report.Service.
func (s *ReportServiceImpl) EmployeeDashboard(ctx context.Context, employeeID string) (report.EmployeeDashboard, error) {
	now := s.clock.Now().In(s.loc)
	today := timewindow.DateOnly(now, s.loc)
	dayStart, dayEnd := timewindow.DayBounds(now, s.loc)

	todayRecord, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	todayStatus := attendance.TodayStatusResponse{Status: attendance.StatusAbsent}
	if todayRecord != nil {
		resp := todayRecord.ToResponse()
		todayStatus = attendance.TodayStatusResponse{
			CheckedIn:    todayRecord.CheckIn != nil,
			CheckedOut:   todayRecord.CheckOut != nil,
			CheckInTime:  resp.CheckInTime,
			CheckOutTime: resp.CheckOutTime,
			Status:       todayRecord.Status,
			TotalHours:   todayRecord.TotalHours,
		}
	}

	monthStart, monthEnd := timewindow.MonthBounds(int(now.Month()), now.Year(), s.loc)
	monthRecords, err := s.repo.ListByEmployee(ctx, employeeID, monthStart, monthEnd, 0)
	if err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to list month records: %w", err)
	}

	weekStart, _ := timewindow.DayBounds(dayStart.AddDate(0, 0, -6), s.loc)
	recent, err := s.repo.ListByEmployee(ctx, employeeID, weekStart, dayEnd, 0)
	if err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to list recent records: %w", err)
	}
	recentResponses := make([]attendance.RecordResponse, 0, len(recent))
	for _, rec := range recent {
		recentResponses = append(recentResponses, rec.ToResponse())
	}

	return report.EmployeeDashboard{
		TodayStatus:      todayStatus,
		MonthSummary:     Summarize(monthRecords),
		RecentAttendance: recentResponses,
	}, nil
}

// ManagerDashboard implements report.Service.
func (s *ReportServiceImpl) ManagerDashboard(ctx context.Context) (report.ManagerDashboard, error) {
	now := s.clock.Now().In(s.loc)
	dayStart, dayEnd := timewindow.DayBounds(now, s.loc)

	employees, todaysRecords, err := s.todaySnapshot(ctx)
	if err != nil {
		return report.ManagerDashboard{}, err
	}

	todaySummary := Summarize(todaysRecords)
	absentees := AbsentToday(employees, todaysRecords)

	weekStart, _ := timewindow.DayBounds(dayStart.AddDate(0, 0, -6), s.loc)
	weekRecords, err := s.repo.ListRange(ctx, weekStart, dayEnd, 0)
	if err != nil {
		return report.ManagerDashboard{}, fmt.Errorf("failed to list week records: %w", err)
	}

	monthStart, monthEnd := timewindow.MonthBounds(int(now.Month()), now.Year(), s.loc)
	monthRecords, err := s.repo.ListRange(ctx, monthStart, monthEnd, 0)
	if err != nil {
		return report.ManagerDashboard{}, fmt.Errorf("failed to list month records: %w", err)
	}

	return report.ManagerDashboard{
		TotalEmployees: len(employees),
		TodayAttendance: report.TodayCounts{
			Present:      todaySummary.Present + todaySummary.Late,
			Absent:       len(employees) - (todaySummary.Present + todaySummary.Late),
			LateArrivals: todaySummary.Late,
		},
		WeeklyTrend:     WeeklyTrend(now, len(employees), weekRecords, s.loc),
		DepartmentWise:  DepartmentBreakdown(monthRecords),
		AbsentEmployees: absentees,
	}, nil
}

// Export implements report.Service.
func (s *ReportServiceImpl) Export(ctx context.Context, filter attendance.Filter) ([]report.ExportRow, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var start, end *time.Time
	if filter.StartDate != nil && *filter.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", *filter.StartDate, s.loc); err == nil {
			start = &t
		}
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", *filter.EndDate, s.loc); err == nil {
			_, e := timewindow.DayBounds(t, s.loc)
			end = &e
		}
	}

	records, err := s.repo.List(ctx, filter, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for export: %w", err)
	}
	return ExportRows(records), nil
}

// todaySnapshot resolves the full roster alongside today's records.
func (s *ReportServiceImpl) todaySnapshot(ctx context.Context) ([]employee.Employee, []attendance.Record, error) {
	now := s.clock.Now().In(s.loc)
	start, end := timewindow.DayBounds(now, s.loc)

	employees, err := s.directory.ListByRole(ctx, employee.RoleEmployee)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.repo.ListRange(ctx, start, end, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list today's records: %w", err)
	}
	return employees, records, nil
}
