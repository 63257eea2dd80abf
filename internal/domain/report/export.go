package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
)

// ExportRow is one record flattened for delimited-text serialization. The
// core produces row values only; file emission belongs to the caller.
type ExportRow struct {
	Date         time.Time
	EmployeeCode string
	Name         string
	Department   string
	CheckIn      *time.Time
	CheckOut     *time.Time
	Status       attendance.Status
	TotalHours   float64
}

// naField mirrors the placeholder the export has always used for missing
// employee details and timestamps.
const naField = "N/A"

// ExportHeader returns the column titles in row order.
func ExportHeader() []string {
	return []string{"Date", "Employee ID", "Name", "Department", "Check In Time", "Check Out Time", "Status", "Total Hours"}
}

// FieldValues renders the row as delimited-text field values. Timestamps use
// RFC 3339 so a re-parse reproduces them exactly.
func (r ExportRow) FieldValues() []string {
	checkIn := naField
	if r.CheckIn != nil {
		checkIn = r.CheckIn.Format(time.RFC3339)
	}
	checkOut := naField
	if r.CheckOut != nil {
		checkOut = r.CheckOut.Format(time.RFC3339)
	}
	return []string{
		r.Date.Format("2006-01-02"),
		r.EmployeeCode,
		r.Name,
		r.Department,
		checkIn,
		checkOut,
		string(r.Status),
		strconv.FormatFloat(r.TotalHours, 'f', -1, 64),
	}
}

// ParseExportRow rebuilds an ExportRow from its field values.
func ParseExportRow(fields []string, loc *time.Location) (ExportRow, error) {
	if len(fields) != 8 {
		return ExportRow{}, fmt.Errorf("expected 8 fields, got %d", len(fields))
	}

	date, err := time.ParseInLocation("2006-01-02", fields[0], loc)
	if err != nil {
		return ExportRow{}, fmt.Errorf("invalid date %q: %w", fields[0], err)
	}

	parseTime := func(s string) (*time.Time, error) {
		if s == naField {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}

	checkIn, err := parseTime(fields[4])
	if err != nil {
		return ExportRow{}, fmt.Errorf("invalid check-in time %q: %w", fields[4], err)
	}
	checkOut, err := parseTime(fields[5])
	if err != nil {
		return ExportRow{}, fmt.Errorf("invalid check-out time %q: %w", fields[5], err)
	}

	status := attendance.Status(fields[6])
	if !status.Valid() {
		return ExportRow{}, fmt.Errorf("invalid status %q", fields[6])
	}

	hours, err := strconv.ParseFloat(fields[7], 64)
	if err != nil {
		return ExportRow{}, fmt.Errorf("invalid total hours %q: %w", fields[7], err)
	}

	return ExportRow{
		Date:         date,
		EmployeeCode: fields[1],
		Name:         fields[2],
		Department:   fields[3],
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Status:       status,
		TotalHours:   hours,
	}, nil
}
