package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
	"github.com/stafftrack/attendance-backend-go/internal/domain/employee"
	"github.com/stafftrack/attendance-backend-go/internal/repository/memory"
)

// stubClock lets a test move time forward between calls.
type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func at(hour, min, sec int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, sec, 0, time.UTC)
}

func newTestService(now time.Time, employees ...employee.Employee) (domain.Service, *memory.AttendanceStore, *stubClock) {
	store := memory.NewAttendanceStore()
	directory := memory.NewEmployeeDirectory(employees...)
	clk := &stubClock{now: now}
	return NewAttendanceService(store, directory, clk, time.UTC), store, clk
}

func TestCheckInCheckOutLifecycle(t *testing.T) {
	svc, store, clk := newTestService(at(8, 45, 0))
	ctx := context.Background()

	in, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPresent, in.Status)
	assert.Equal(t, "2026-03-10 08:45:00", in.CheckInTime)

	clk.set(at(17, 15, 0))
	out, err := svc.CheckOut(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 8.5, out.TotalHours)

	status, err := svc.GetTodayStatus(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.True(t, status.CheckedOut)
	assert.Equal(t, domain.StatusPresent, status.Status)
	assert.Equal(t, 8.5, status.TotalHours)

	rec, err := store.GetByEmployeeAndDate(ctx, "emp-1", at(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, at(0, 0, 0), rec.Date)
}

func TestCheckInLateBoundary(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want domain.Status
	}{
		{"one second before nine", at(8, 59, 59), domain.StatusPresent},
		{"exactly nine", at(9, 0, 0), domain.StatusPresent},
		{"one second past nine", at(9, 0, 1), domain.StatusLate},
		{"mid morning", at(10, 30, 0), domain.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(tt.now)
			in, err := svc.CheckIn(context.Background(), "emp-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Status)
		})
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	svc, _, clk := newTestService(at(8, 30, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)

	clk.set(at(11, 0, 0))
	_, err = svc.CheckIn(ctx, "emp-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)
}

func TestCheckInNextDayAfterCheckIn(t *testing.T) {
	svc, _, clk := newTestService(at(8, 30, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)

	clk.set(at(8, 30, 0).AddDate(0, 0, 1))
	_, err = svc.CheckIn(ctx, "emp-1")
	assert.NoError(t, err)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc, _, _ := newTestService(at(17, 0, 0))

	_, err := svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, domain.ErrNotCheckedIn)
}

func TestCheckOutTwiceSameDay(t *testing.T) {
	svc, _, clk := newTestService(at(9, 0, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)

	clk.set(at(17, 0, 0))
	_, err = svc.CheckOut(ctx, "emp-1")
	require.NoError(t, err)

	clk.set(at(18, 0, 0))
	_, err = svc.CheckOut(ctx, "emp-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedOut)
}

func TestCheckOutOnAbsentRecord(t *testing.T) {
	// An absent record written by the nightly job has no check-in, so a
	// checkout against it must still fail with not-checked-in.
	emp := employee.Employee{ID: "emp-1", EmployeeCode: "EMP001", FullName: "Ava Chen", Role: employee.RoleEmployee}
	svc, _, _ := newTestService(at(10, 0, 0), emp)
	ctx := context.Background()

	_, err := svc.MarkAbsentees(ctx, at(10, 0, 0))
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, "emp-1")
	assert.ErrorIs(t, err, domain.ErrNotCheckedIn)
}

func TestCheckInClaimsAbsentRecord(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", EmployeeCode: "EMP001", FullName: "Ava Chen", Role: employee.RoleEmployee}
	svc, store, _ := newTestService(at(9, 30, 0), emp)
	ctx := context.Background()

	created, err := svc.MarkAbsentees(ctx, at(9, 30, 0))
	require.NoError(t, err)
	require.Equal(t, 1, created)

	in, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLate, in.Status)

	rec, err := store.GetByEmployeeAndDate(ctx, "emp-1", at(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.StatusLate, rec.Status)
	assert.NotNil(t, rec.CheckIn)
}

func TestConcurrentCheckInsSingleWinner(t *testing.T) {
	const workers = 32

	svc, _, _ := newTestService(at(8, 55, 0))
	ctx := context.Background()

	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(ctx, "emp-1")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrAlreadyCheckedIn), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, successes)
}

func TestMarkAbsenteesIdempotent(t *testing.T) {
	employees := []employee.Employee{
		{ID: "emp-1", EmployeeCode: "EMP001", FullName: "Ava Chen", Role: employee.RoleEmployee},
		{ID: "emp-2", EmployeeCode: "EMP002", FullName: "Ben Ortiz", Role: employee.RoleEmployee},
		{ID: "emp-3", EmployeeCode: "EMP003", FullName: "Cara Patel", Role: employee.RoleEmployee},
		{ID: "mgr-1", EmployeeCode: "MGR001", FullName: "Dana Kim", Role: employee.RoleManager},
	}
	svc, _, _ := newTestService(at(9, 0, 0), employees...)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-2")
	require.NoError(t, err)

	created, err := svc.MarkAbsentees(ctx, at(9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = svc.MarkAbsentees(ctx, at(9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	status, err := svc.GetTodayStatus(ctx, "emp-2")
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
}

func TestGetTodayStatusDefaultsToAbsent(t *testing.T) {
	svc, _, _ := newTestService(at(12, 0, 0))

	status, err := svc.GetTodayStatus(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.False(t, status.CheckedIn)
	assert.False(t, status.CheckedOut)
	assert.Nil(t, status.CheckInTime)
	assert.Equal(t, domain.StatusAbsent, status.Status)
	assert.Equal(t, 0.0, status.TotalHours)
}

func TestHistoryMonthFilter(t *testing.T) {
	svc, store, clk := newTestService(at(9, 0, 0))
	ctx := context.Background()

	// One record in March, one in February.
	_, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	feb := domain.Record{
		EmployeeID: "emp-1",
		Date:       time.Date(2026, time.February, 12, 0, 0, 0, 0, time.UTC),
		Status:     domain.StatusPresent,
	}
	_, err = store.Create(ctx, feb)
	require.NoError(t, err)

	clk.set(at(18, 0, 0))

	records, err := svc.History(ctx, "emp-1", domain.HistoryFilter{Month: 3, Year: 2026})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-03-10", records[0].Date)

	records, err = svc.History(ctx, "emp-1", domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestHistoryRejectsMonthWithoutYear(t *testing.T) {
	svc, _, _ := newTestService(at(9, 0, 0))

	_, err := svc.History(context.Background(), "emp-1", domain.HistoryFilter{Month: 3})
	assert.Error(t, err)
}

func TestListFilters(t *testing.T) {
	employees := []employee.Employee{
		{ID: "emp-1", EmployeeCode: "EMP001", FullName: "Ava Chen", Department: "Engineering", Role: employee.RoleEmployee},
		{ID: "emp-2", EmployeeCode: "EMP002", FullName: "Ben Ortiz", Department: "Sales", Role: employee.RoleEmployee},
	}
	store := memory.NewAttendanceStore()
	directory := memory.NewEmployeeDirectory(employees...)
	store.WithEmployeeLookup(func(id string) (code, name, department *string) {
		emp, err := directory.GetByID(context.Background(), id)
		if err != nil {
			return nil, nil, nil
		}
		return &emp.EmployeeCode, &emp.FullName, &emp.Department
	})
	clk := &stubClock{now: at(9, 30, 0)}
	svc := NewAttendanceService(store, directory, clk, time.UTC)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	clk.set(at(8, 30, 0))
	_, err = svc.CheckIn(ctx, "emp-2")
	require.NoError(t, err)

	code := "EMP001"
	records, err := svc.List(ctx, domain.Filter{EmployeeCode: &code})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "emp-1", records[0].EmployeeID)

	late := domain.StatusLate
	records, err = svc.List(ctx, domain.Filter{Status: &late})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.StatusLate, records[0].Status)
}

func TestListRejectsUnknownEmployeeCode(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", EmployeeCode: "EMP001", FullName: "Ava Chen", Role: employee.RoleEmployee}
	svc, _, _ := newTestService(at(9, 0, 0), emp)
	ctx := context.Background()

	code := "EMP999"
	_, err := svc.List(ctx, domain.Filter{EmployeeCode: &code})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateRecordToHalfDay(t *testing.T) {
	svc, store, clk := newTestService(at(8, 30, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	clk.set(at(12, 30, 0))
	_, err = svc.CheckOut(ctx, "emp-1")
	require.NoError(t, err)

	rec, err := store.GetByEmployeeAndDate(ctx, "emp-1", at(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)

	updated, err := svc.UpdateRecord(ctx, rec.ID, domain.UpdateRequest{Status: domain.StatusHalfDay})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHalfDay, updated.Status)
	assert.Equal(t, 4.0, updated.TotalHours)
}

func TestUpdateRecordRewritesTimes(t *testing.T) {
	svc, store, _ := newTestService(at(8, 0, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	rec, err := store.GetByEmployeeAndDate(ctx, "emp-1", at(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)

	out := "2026-03-10 16:00:00"
	updated, err := svc.UpdateRecord(ctx, rec.ID, domain.UpdateRequest{
		Status:       domain.StatusPresent,
		CheckOutTime: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, updated.TotalHours)
	require.NotNil(t, updated.CheckOutTime)
	assert.Equal(t, out, *updated.CheckOutTime)
}

func TestUpdateRecordRejectsCheckOutBeforeCheckIn(t *testing.T) {
	svc, store, _ := newTestService(at(9, 0, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	rec, err := store.GetByEmployeeAndDate(ctx, "emp-1", at(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)

	out := "2026-03-10 07:00:00"
	_, err = svc.UpdateRecord(ctx, rec.ID, domain.UpdateRequest{
		Status:       domain.StatusPresent,
		CheckOutTime: &out,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	// The stored record is untouched; hours never go negative.
	rec, err = store.GetByEmployeeAndDate(ctx, "emp-1", at(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.CheckOut)
	assert.Equal(t, 0.0, rec.TotalHours)
}

func TestUpdateRecordRejectsCheckOutWithoutCheckIn(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", EmployeeCode: "EMP001", FullName: "Ava Chen", Role: employee.RoleEmployee}
	svc, store, _ := newTestService(at(10, 0, 0), emp)
	ctx := context.Background()

	// An absent record from the nightly job has no check-in.
	_, err := svc.MarkAbsentees(ctx, at(10, 0, 0))
	require.NoError(t, err)
	rec, err := store.GetByEmployeeAndDate(ctx, "emp-1", at(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Nil(t, rec.CheckIn)

	out := "2026-03-10 17:00:00"
	_, err = svc.UpdateRecord(ctx, rec.ID, domain.UpdateRequest{
		Status:       domain.StatusAbsent,
		CheckOutTime: &out,
	})
	assert.Error(t, err)

	rec, err = store.GetByEmployeeAndDate(ctx, "emp-1", at(0, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.CheckOut)
}

func TestUpdateRecordUnknownID(t *testing.T) {
	svc, _, _ := newTestService(at(9, 0, 0))

	_, err := svc.UpdateRecord(context.Background(), "nope", domain.UpdateRequest{Status: domain.StatusPresent})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestUpdateRecordInvalidStatus(t *testing.T) {
	svc, _, _ := newTestService(at(9, 0, 0))

	_, err := svc.UpdateRecord(context.Background(), "any", domain.UpdateRequest{Status: domain.Status("vacation")})
	assert.Error(t, err)
}

func TestListRejectsInvertedRange(t *testing.T) {
	svc, _, _ := newTestService(at(9, 0, 0))

	start, end := "2026-03-10", "2026-03-01"
	_, err := svc.List(context.Background(), domain.Filter{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
