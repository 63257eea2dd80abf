package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.status, a.total_hours, a.created_at, a.updated_at`

const recordJoinColumns = recordColumns + `,
	e.employee_code AS employee_code,
	e.full_name AS employee_name,
	e.department AS employee_department`

func scanRecord(row pgx.Row, withEmployee bool) (attendance.Record, error) {
	var rec attendance.Record
	dest := []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.Status, &rec.TotalHours, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &rec.EmployeeCode, &rec.EmployeeName, &rec.EmployeeDepartment)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// Create implements attendance.Repository. The unique index on
// (employee_id, date) backs the one-record-per-day invariant; a conflicting
// insert returns attendance.ErrRecordConflict instead of a second row.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	query := `
		INSERT INTO attendance_records (employee_id, date, check_in, check_out, status, total_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := a.db.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.TotalHours,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordConflict
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*attendance.Record, error) {
	query := `
		SELECT` + recordColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1 AND a.date = $2
		LIMIT 1
	`

	rec, err := scanRecord(a.db.QueryRow(ctx, query, employeeID, day), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return &rec, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (*attendance.Record, error) {
	query := `
		SELECT` + recordColumns + `
		FROM attendance_records a
		WHERE a.id = $1
	`

	rec, err := scanRecord(a.db.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by id: %w", err)
	}

	return &rec, nil
}

// SetCheckIn implements attendance.Repository. The check_in guard in the
// WHERE clause makes the no-double-check-in check atomic: a racing call sees
// zero rows affected.
func (a *attendanceRepository) SetCheckIn(ctx context.Context, id string, checkIn time.Time, status attendance.Status) (bool, error) {
	query := `
		UPDATE attendance_records
		SET check_in = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND check_in IS NULL
	`

	tag, err := a.db.Exec(ctx, query, checkIn, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to set check-in: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// SetCheckOut implements attendance.Repository.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (bool, error) {
	query := `
		UPDATE attendance_records
		SET check_out = $1, total_hours = $2, updated_at = NOW()
		WHERE id = $3 AND check_out IS NULL
	`

	tag, err := a.db.Exec(ctx, query, checkOut, totalHours, id)
	if err != nil {
		return false, fmt.Errorf("failed to set check-out: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	query := `
		UPDATE attendance_records
		SET check_in = $1, check_out = $2, status = $3, total_hours = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := a.db.QueryRow(ctx, query,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.TotalHours,
		record.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// ListByEmployee implements attendance.Repository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time, limit int) ([]attendance.Record, error) {
	query := `
		SELECT` + recordColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date DESC
	`
	args := []interface{}{employeeID, start, end}
	if limit > 0 {
		query += " LIMIT $4"
		args = append(args, limit)
	}

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records by employee: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListRange implements attendance.Repository.
func (a *attendanceRepository) ListRange(ctx context.Context, start, end time.Time, limit int) ([]attendance.Record, error) {
	query := `
		SELECT` + recordJoinColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.date DESC
	`
	args := []interface{}{start, end}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter, start, end *time.Time) ([]attendance.Record, error) {
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		baseWhere += fmt.Sprintf(" AND e.employee_code = $%d", argIdx)
		args = append(args, *filter.EmployeeCode)
		argIdx++
	}
	if start != nil {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *start)
		argIdx++
	}
	if end != nil {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *end)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `
		SELECT` + recordJoinColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY a.date DESC
	`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// BulkCreateAbsences implements attendance.Repository. Conflicting days are
// skipped, so the job can run more than once for the same day safely.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, records []attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO attendance_records (employee_id, date, status, total_hours)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (employee_id, date) DO NOTHING
	`
	for _, rec := range records {
		batch.Queue(query, rec.EmployeeID, rec.Date, rec.Status)
	}

	results := a.db.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to bulk create absences: %w", err)
		}
	}

	return nil
}
