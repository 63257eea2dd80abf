// Package memory holds mutex-guarded implementations of the storage
// contracts. They back the engine tests and document the atomicity the
// PostgreSQL repositories get from the unique index and conditional updates.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
)

type AttendanceStore struct {
	mu      sync.Mutex
	byID    map[string]*attendance.Record
	byKey   map[string]string // (employeeID, day) -> record ID
	lookups func(employeeID string) (code, name, department *string)
}

func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{
		byID:  make(map[string]*attendance.Record),
		byKey: make(map[string]string),
	}
}

// WithEmployeeLookup wires the join the SQL repository performs with LEFT
// JOIN employees. Optional; without it joined fields stay nil.
func (s *AttendanceStore) WithEmployeeLookup(fn func(employeeID string) (code, name, department *string)) *AttendanceStore {
	s.lookups = fn
	return s
}

func dayKey(employeeID string, day time.Time) string {
	return employeeID + "|" + day.Format("2006-01-02")
}

// Create implements attendance.Repository.
func (s *AttendanceStore) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(record.EmployeeID, record.Date)
	if _, exists := s.byKey[key]; exists {
		return attendance.Record{}, attendance.ErrRecordConflict
	}

	record.ID = uuid.NewString()
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	stored := record
	s.byID[record.ID] = &stored
	s.byKey[key] = record.ID
	return record, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (s *AttendanceStore) GetByEmployeeAndDate(_ context.Context, employeeID string, day time.Time) (*attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byKey[dayKey(employeeID, day)]
	if !ok {
		return nil, nil
	}
	rec := *s.byID[id]
	return &rec, nil
}

// GetByID implements attendance.Repository.
func (s *AttendanceStore) GetByID(_ context.Context, id string) (*attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

// SetCheckIn implements attendance.Repository.
func (s *AttendanceStore) SetCheckIn(_ context.Context, id string, checkIn time.Time, status attendance.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok || rec.CheckIn != nil {
		return false, nil
	}
	in := checkIn
	rec.CheckIn = &in
	rec.Status = status
	rec.UpdatedAt = time.Now()
	return true, nil
}

// SetCheckOut implements attendance.Repository.
func (s *AttendanceStore) SetCheckOut(_ context.Context, id string, checkOut time.Time, totalHours float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok || rec.CheckOut != nil {
		return false, nil
	}
	out := checkOut
	rec.CheckOut = &out
	rec.TotalHours = totalHours
	rec.UpdatedAt = time.Now()
	return true, nil
}

// Update implements attendance.Repository.
func (s *AttendanceStore) Update(_ context.Context, record attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[record.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	rec.CheckIn = record.CheckIn
	rec.CheckOut = record.CheckOut
	rec.Status = record.Status
	rec.TotalHours = record.TotalHours
	rec.UpdatedAt = time.Now()
	return nil
}

// ListByEmployee implements attendance.Repository.
func (s *AttendanceStore) ListByEmployee(_ context.Context, employeeID string, start, end time.Time, limit int) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []attendance.Record
	for _, rec := range s.byID {
		if rec.EmployeeID != employeeID {
			continue
		}
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		records = append(records, *rec)
	}

	return s.finish(records, limit), nil
}

// ListRange implements attendance.Repository.
func (s *AttendanceStore) ListRange(_ context.Context, start, end time.Time, limit int) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []attendance.Record
	for _, rec := range s.byID {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		records = append(records, s.joined(*rec))
	}

	return s.finish(records, limit), nil
}

// List implements attendance.Repository.
func (s *AttendanceStore) List(_ context.Context, filter attendance.Filter, start, end *time.Time) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []attendance.Record
	for _, rec := range s.byID {
		joined := s.joined(*rec)
		if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
			if joined.EmployeeCode == nil || *joined.EmployeeCode != *filter.EmployeeCode {
				continue
			}
		}
		if start != nil && rec.Date.Before(*start) {
			continue
		}
		if end != nil && rec.Date.After(*end) {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && rec.Status != *filter.Status {
			continue
		}
		records = append(records, joined)
	}

	return s.finish(records, filter.Limit), nil
}

// BulkCreateAbsences implements attendance.Repository.
func (s *AttendanceStore) BulkCreateAbsences(_ context.Context, records []attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		key := dayKey(record.EmployeeID, record.Date)
		if _, exists := s.byKey[key]; exists {
			continue
		}
		record.ID = uuid.NewString()
		now := time.Now()
		record.CreatedAt = now
		record.UpdatedAt = now
		stored := record
		s.byID[record.ID] = &stored
		s.byKey[key] = record.ID
	}
	return nil
}

func (s *AttendanceStore) joined(rec attendance.Record) attendance.Record {
	if s.lookups != nil {
		rec.EmployeeCode, rec.EmployeeName, rec.EmployeeDepartment = s.lookups(rec.EmployeeID)
	}
	return rec
}

// finish sorts newest first and applies the cap, matching the SQL ordering.
func (s *AttendanceStore) finish(records []attendance.Record, limit int) []attendance.Record {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}
