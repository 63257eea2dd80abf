package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
	"github.com/stafftrack/attendance-backend-go/internal/domain/employee"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/clock"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/timewindow"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/validator"
)

// AttendanceServiceImpl orchestrates the per-day record lifecycle. Atomicity
// of the one-record-per-day invariant lives at the storage boundary: Create
// surfaces ErrRecordConflict and the conditional check-in/check-out updates
// report whether they won, so concurrent calls resolve to one success.
type AttendanceServiceImpl struct {
	repo      attendance.Repository
	directory employee.Directory
	clock     clock.Clock
	loc       *time.Location
}

func NewAttendanceService(
	repo attendance.Repository,
	directory employee.Directory,
	clk clock.Clock,
	loc *time.Location,
) attendance.Service {
	return &AttendanceServiceImpl{
		repo:      repo,
		directory: directory,
		clock:     clk,
		loc:       loc,
	}
}

// CheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.CheckInResponse, error) {
	now := s.clock.Now().In(s.loc)
	day := timewindow.DateOnly(now, s.loc)

	existing, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := attendance.DeriveOnCheckIn(now, s.loc)

	if existing != nil {
		// A record without a check-in exists when the absentee job ran
		// first; claim it instead of inserting.
		won, err := s.repo.SetCheckIn(ctx, existing.ID, now, status)
		if err != nil {
			return attendance.CheckInResponse{}, fmt.Errorf("failed to set check-in: %w", err)
		}
		if !won {
			return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
		}
	} else {
		record := attendance.Record{
			EmployeeID: employeeID,
			Date:       day,
			CheckIn:    &now,
			Status:     status,
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			if errors.Is(err, attendance.ErrRecordConflict) {
				return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
			}
			return attendance.CheckInResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
	}

	return attendance.CheckInResponse{
		CheckInTime: now.Format("2006-01-02 15:04:05"),
		Status:      status,
	}, nil
}

// CheckOut implements attendance.Service. Status is never re-derived here;
// checkout only adds the timestamp and the hour total.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.CheckOutResponse, error) {
	now := s.clock.Now().In(s.loc)
	day := timewindow.DateOnly(now, s.loc)

	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	totalHours := attendance.DeriveHours(record.CheckIn, &now)

	won, err := s.repo.SetCheckOut(ctx, record.ID, now, totalHours)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to set check-out: %w", err)
	}
	if !won {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	return attendance.CheckOutResponse{
		CheckOutTime: now.Format("2006-01-02 15:04:05"),
		TotalHours:   totalHours,
	}, nil
}

// GetTodayStatus implements attendance.Service. Never fails on a missing
// record; that is the absent, not-checked-in default view.
func (s *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, employeeID string) (attendance.TodayStatusResponse, error) {
	now := s.clock.Now().In(s.loc)
	day := timewindow.DateOnly(now, s.loc)

	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if record == nil {
		return attendance.TodayStatusResponse{
			CheckedIn:  false,
			CheckedOut: false,
			Status:     attendance.StatusAbsent,
		}, nil
	}

	resp := record.ToResponse()
	return attendance.TodayStatusResponse{
		CheckedIn:    record.CheckIn != nil,
		CheckedOut:   record.CheckOut != nil,
		CheckInTime:  resp.CheckInTime,
		CheckOutTime: resp.CheckOutTime,
		Status:       record.Status,
		TotalHours:   record.TotalHours,
	}, nil
}

// History implements attendance.Service.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var start, end time.Time
	if filter.Month != 0 {
		start, end = timewindow.MonthBounds(filter.Month, filter.Year, s.loc)
	} else {
		start = time.Time{}
		_, end = timewindow.DayBounds(s.clock.Now(), s.loc)
	}

	records, err := s.repo.ListByEmployee(ctx, employeeID, start, end, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, rec.ToResponse())
	}
	return responses, nil
}

// List implements attendance.Service.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// An employee_code filter must name someone on the roster.
	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		if _, err := s.directory.GetByCode(ctx, *filter.EmployeeCode); err != nil {
			return nil, err
		}
	}

	start, end := s.rangeOf(filter)
	records, err := s.repo.List(ctx, filter, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, rec.ToResponse())
	}
	return responses, nil
}

// UpdateRecord implements attendance.Service. Timestamps left out of the
// request keep their stored values; hours are re-derived from the result.
func (s *AttendanceServiceImpl) UpdateRecord(ctx context.Context, id string, req attendance.UpdateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up record: %w", err)
	}
	if record == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	if t, ok := s.parseStamp(req.CheckInTime); ok {
		record.CheckIn = t
	}
	if t, ok := s.parseStamp(req.CheckOutTime); ok {
		record.CheckOut = t
	}

	// The resulting pair must stay well-formed: a check-out needs a
	// check-in, and never precedes it.
	if record.CheckOut != nil {
		if record.CheckIn == nil {
			return attendance.RecordResponse{}, validator.ValidationErrors{{
				Field:   "check_out_time",
				Message: "check_out_time requires a check_in_time",
			}}
		}
		if record.CheckOut.Before(*record.CheckIn) {
			return attendance.RecordResponse{}, attendance.ErrInvalidRange
		}
	}

	record.Status = req.Status
	record.TotalHours = attendance.DeriveHours(record.CheckIn, record.CheckOut)

	if err := s.repo.Update(ctx, *record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update record: %w", err)
	}
	return record.ToResponse(), nil
}

// MarkAbsentees implements attendance.Service. The bulk insert skips
// conflicting days, so a rerun for the same day stays idempotent.
func (s *AttendanceServiceImpl) MarkAbsentees(ctx context.Context, day time.Time) (int, error) {
	day = timewindow.DateOnly(day, s.loc)

	employees, err := s.directory.ListByRole(ctx, employee.RoleEmployee)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	var absences []attendance.Record
	for _, emp := range employees {
		existing, err := s.repo.GetByEmployeeAndDate(ctx, emp.ID, day)
		if err != nil {
			return 0, fmt.Errorf("failed to look up record for %s: %w", emp.ID, err)
		}
		if existing != nil {
			continue
		}
		absences = append(absences, attendance.Record{
			EmployeeID: emp.ID,
			Date:       day,
			Status:     attendance.StatusAbsent,
		})
	}

	if len(absences) == 0 {
		return 0, nil
	}
	if err := s.repo.BulkCreateAbsences(ctx, absences); err != nil {
		return 0, fmt.Errorf("failed to create absence records: %w", err)
	}
	return len(absences), nil
}

// parseStamp resolves an optional "2006-01-02 15:04:05" stamp in the
// configured zone. The request has already validated the format.
func (s *AttendanceServiceImpl) parseStamp(v *string) (*time.Time, bool) {
	if v == nil || *v == "" {
		return nil, false
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", *v, s.loc)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// rangeOf resolves the filter's date strings in the configured zone. The
// filter has already validated formats and ordering.
func (s *AttendanceServiceImpl) rangeOf(filter attendance.Filter) (start, end *time.Time) {
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
	return start, end
}
