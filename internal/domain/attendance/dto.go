package attendance

import (
	"time"

	"github.com/stafftrack/attendance-backend-go/internal/pkg/validator"
)

// CheckInResponse is returned by a successful check-in.
type CheckInResponse struct {
	CheckInTime string `json:"check_in_time"`
	Status      Status `json:"status"`
}

// CheckOutResponse is returned by a successful check-out.
type CheckOutResponse struct {
	CheckOutTime string  `json:"check_out_time"`
	TotalHours   float64 `json:"total_hours"`
}

// TodayStatusResponse is the read-only view of today's record. When no record
// exists it defaults to the not-checked-in absent view and never errors.
type TodayStatusResponse struct {
	CheckedIn    bool    `json:"checked_in"`
	CheckedOut   bool    `json:"checked_out"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       Status  `json:"status"`
	TotalHours   float64 `json:"total_hours"`
}

// RecordResponse is the serializable form of a Record.
type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       Status  `json:"status"`
	TotalHours   float64 `json:"total_hours"`
}

// HistoryFilter scopes one employee's history to an optional month.
type HistoryFilter struct {
	Month int
	Year  int
	Limit int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	// Month and year travel together; zero values mean "unscoped".
	if (f.Month == 0) != (f.Year == 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month and year must be provided together",
		})
	}
	if f.Month < 0 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter narrows the full record listing. All fields are optional; Limit
// bounds the result size and is a transport policy, not an engine invariant.
type Filter struct {
	EmployeeCode *string
	StartDate    *string
	EndDate      *string
	Status       *Status
	Limit        int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	if f.StartDate != nil && *f.StartDate != "" {
		var ok bool
		if start, ok = validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		var ok bool
		if end, ok = validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return ErrInvalidRange
	}

	if f.Status != nil && !f.Status.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, half-day",
		})
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest corrects an existing record. Manager path; the only way a
// record acquires the half-day status.
type UpdateRequest struct {
	Status       Status  `json:"status"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, half-day",
		})
	}
	for field, v := range map[string]*string{
		"check_in_time":  r.CheckInTime,
		"check_out_time": r.CheckOutTime,
	} {
		if v == nil || *v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02 15:04:05", *v); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in YYYY-MM-DD HH:MM:SS format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse converts a Record to its serializable form.
func (r Record) ToResponse() RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeCode: r.EmployeeCode,
		EmployeeName: r.EmployeeName,
		Department:   r.EmployeeDepartment,
		Date:         r.Date.Format("2006-01-02"),
		CheckInTime:  timePtrToString(r.CheckIn),
		CheckOutTime: timePtrToString(r.CheckOut),
		Status:       r.Status,
		TotalHours:   r.TotalHours,
	}
}
