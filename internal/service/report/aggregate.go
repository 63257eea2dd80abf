package report

import (
	"time"

	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
	"github.com/stafftrack/attendance-backend-go/internal/domain/employee"
	"github.com/stafftrack/attendance-backend-go/internal/domain/report"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/timewindow"
)

// The functions in this file are the aggregation engine proper: pure
// computations over record sets the repositories have already resolved.
// They never fail; empty input rolls up to zero values.

// Summarize counts records by status and sums hours, rounding the total once
// at the end rather than per record.
func Summarize(records []attendance.Record) report.Summary {
	var summary report.Summary
	var hours float64
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		}
		hours += rec.TotalHours
	}
	summary.TotalHours = attendance.RoundHours(hours)
	return summary
}

// DepartmentBreakdown groups status counts by department, discovered from
// the data. Records whose employee cannot be resolved land under the
// Unknown sentinel.
func DepartmentBreakdown(records []attendance.Record) map[string]report.DepartmentCounts {
	breakdown := make(map[string]report.DepartmentCounts)
	for _, rec := range records {
		dept := report.UnknownDepartment
		if rec.EmployeeDepartment != nil && *rec.EmployeeDepartment != "" {
			dept = *rec.EmployeeDepartment
		}
		counts := breakdown[dept]
		switch rec.Status {
		case attendance.StatusPresent:
			counts.Present++
		case attendance.StatusAbsent:
			counts.Absent++
		case attendance.StatusLate:
			counts.Late++
		case attendance.StatusHalfDay:
			counts.HalfDay++
		}
		breakdown[dept] = counts
	}
	return breakdown
}

// WeeklyTrend produces seven daily points, oldest first, ending at today.
// A late record still means the employee showed up, so late counts as
// present here; absent is whatever remains of the head count.
func WeeklyTrend(today time.Time, totalEmployees int, records []attendance.Record, loc *time.Location) []report.TrendPoint {
	points := make([]report.TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		start, end := timewindow.DayBounds(day, loc)

		present := 0
		for _, rec := range records {
			if rec.Date.Before(start) || rec.Date.After(end) {
				continue
			}
			if rec.Status.CountsAsPresent() {
				present++
			}
		}

		points = append(points, report.TrendPoint{
			Date:    start.Format("2006-01-02"),
			Present: present,
			Absent:  totalEmployees - present,
		})
	}
	return points
}

// AbsentToday lists employees with no record today or a record whose status
// is explicitly absent. Any other status, late included, keeps an employee
// off the list.
func AbsentToday(allEmployees []employee.Employee, todaysRecords []attendance.Record) []report.AbsentEmployee {
	byEmployee := recordsByEmployee(todaysRecords)

	absentees := make([]report.AbsentEmployee, 0)
	for _, emp := range allEmployees {
		rec, ok := byEmployee[emp.ID]
		if ok && rec.Status != attendance.StatusAbsent {
			continue
		}
		absentees = append(absentees, report.AbsentEmployee{
			ID:           emp.ID,
			EmployeeCode: emp.EmployeeCode,
			Name:         emp.FullName,
			Department:   emp.Department,
		})
	}
	return absentees
}

// TodayStatusForAll joins every employee against today's records; employees
// without one default to the absent, not-checked-in view.
func TodayStatusForAll(allEmployees []employee.Employee, todaysRecords []attendance.Record) []report.EmployeeTodayStatus {
	byEmployee := recordsByEmployee(todaysRecords)

	statuses := make([]report.EmployeeTodayStatus, 0, len(allEmployees))
	for _, emp := range allEmployees {
		status := report.EmployeeTodayStatus{
			EmployeeID:   emp.ID,
			EmployeeCode: emp.EmployeeCode,
			Name:         emp.FullName,
			Email:        emp.Email,
			Department:   emp.Department,
			Status:       attendance.StatusAbsent,
		}
		if rec, ok := byEmployee[emp.ID]; ok {
			resp := rec.ToResponse()
			status.CheckedIn = rec.CheckIn != nil
			status.CheckedOut = rec.CheckOut != nil
			status.CheckInTime = resp.CheckInTime
			status.CheckOutTime = resp.CheckOutTime
			status.Status = rec.Status
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// ExportRows flattens records into tabular rows, with the original export's
// N/A placeholder for unresolvable employees.
func ExportRows(records []attendance.Record) []report.ExportRow {
	rows := make([]report.ExportRow, 0, len(records))
	for _, rec := range records {
		row := report.ExportRow{
			Date:         rec.Date,
			EmployeeCode: "N/A",
			Name:         "N/A",
			Department:   "N/A",
			CheckIn:      rec.CheckIn,
			CheckOut:     rec.CheckOut,
			Status:       rec.Status,
			TotalHours:   rec.TotalHours,
		}
		if rec.EmployeeCode != nil {
			row.EmployeeCode = *rec.EmployeeCode
		}
		if rec.EmployeeName != nil {
			row.Name = *rec.EmployeeName
		}
		if rec.EmployeeDepartment != nil {
			row.Department = *rec.EmployeeDepartment
		}
		rows = append(rows, row)
	}
	return rows
}

func recordsByEmployee(records []attendance.Record) map[string]attendance.Record {
	byEmployee := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = rec
	}
	return byEmployee
}
