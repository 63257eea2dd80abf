package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/attendance-backend-go/internal/domain/employee"
	"github.com/stafftrack/attendance-backend-go/internal/domain/report"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/clock"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/attendance-backend-go/internal/repository/memory"
	attendanceService "github.com/stafftrack/attendance-backend-go/internal/service/attendance"
	reportService "github.com/stafftrack/attendance-backend-go/internal/service/report"
)

const routerTestSecret = "test-secret-key-for-jwt"

type testEnv struct {
	router     http.Handler
	jwtService jwt.Service
}

func newTestEnv(t *testing.T, now time.Time, employees ...employee.Employee) testEnv {
	t.Helper()

	directory := memory.NewEmployeeDirectory(employees...)
	store := memory.NewAttendanceStore().WithEmployeeLookup(func(id string) (code, name, department *string) {
		emp, err := directory.GetByID(context.Background(), id)
		if err != nil {
			return nil, nil, nil
		}
		return &emp.EmployeeCode, &emp.FullName, &emp.Department
	})

	clk := clock.Fixed(now)
	attendanceSvc := attendanceService.NewAttendanceService(store, directory, clk, time.UTC)
	reportSvc := reportService.NewReportService(store, directory, clk, time.UTC)
	jwtService := jwt.NewJWTService(routerTestSecret, "1h")

	router := NewRouter(jwtService, "test",
		NewAttendanceHandler(attendanceSvc),
		NewReportHandler(reportSvc),
	)
	return testEnv{router: router, jwtService: jwtService}
}

func (e testEnv) do(t *testing.T, method, target string, emp *employee.Employee) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if emp != nil {
		token, _, err := e.jwtService.GenerateAccessToken(*emp)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:           "emp-1",
		EmployeeCode: "EMP001",
		FullName:     "Ava Chen",
		Email:        "ava@example.com",
		Department:   "Engineering",
		Role:         employee.RoleEmployee,
	}
}

func testManager() employee.Employee {
	return employee.Employee{
		ID:           "mgr-1",
		EmployeeCode: "MGR001",
		FullName:     "Dana Kim",
		Email:        "dana@example.com",
		Department:   "Operations",
		Role:         employee.RoleManager,
	}
}

func TestRouter_CheckInLifecycle(t *testing.T) {
	emp := testEmployee()
	env := newTestEnv(t, time.Date(2026, time.March, 10, 8, 45, 0, 0, time.UTC), emp)

	rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", &emp)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])

	// A second check-in the same day conflicts.
	rec = env.do(t, http.MethodPost, "/api/v1/attendance/check-in", &emp)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/attendance/today", &emp)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeResponse(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["checked_in"])
	assert.Equal(t, false, data["checked_out"])
	assert.Equal(t, "present", data["status"])
}

func TestRouter_CheckOutWithoutCheckIn(t *testing.T) {
	emp := testEmployee()
	env := newTestEnv(t, time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC), emp)

	rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-out", &emp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	env := newTestEnv(t, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ManagerOnlyRoutes(t *testing.T) {
	emp := testEmployee()
	mgr := testManager()
	env := newTestEnv(t, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC), emp, mgr)

	for _, target := range []string{
		"/api/v1/attendance/all",
		"/api/v1/attendance/summary",
		"/api/v1/attendance/today-status",
		"/api/v1/attendance/export",
		"/api/v1/dashboard/manager",
	} {
		rec := env.do(t, http.MethodGet, target, &emp)
		assert.Equal(t, http.StatusForbidden, rec.Code, "employee should not reach %s", target)

		rec = env.do(t, http.MethodGet, target, &mgr)
		assert.Equal(t, http.StatusOK, rec.Code, "manager should reach %s", target)
	}
}

func TestRouter_ExportCSV(t *testing.T) {
	emp := testEmployee()
	mgr := testManager()
	env := newTestEnv(t, time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC), emp, mgr)

	rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", &emp)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/attendance/export", &mgr)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, report.ExportHeader(), rows[0])
	assert.Equal(t, "EMP001", rows[1][1])
	assert.Equal(t, "present", rows[1][6])
}

func TestRouter_MyHistoryAndSummary(t *testing.T) {
	emp := testEmployee()
	env := newTestEnv(t, time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC), emp)

	rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", &emp)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/attendance/my-history?month=3&year=2026", &emp)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	records := body["data"].([]interface{})
	assert.Len(t, records, 1)

	rec = env.do(t, http.MethodGet, "/api/v1/attendance/my-summary", &emp)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeResponse(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["month"])
	assert.Equal(t, float64(1), data["present"])
}

func TestRouter_EmployeeDashboard(t *testing.T) {
	emp := testEmployee()
	env := newTestEnv(t, time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC), emp)

	rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", &emp)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/dashboard/employee", &emp)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	data := body["data"].(map[string]interface{})
	today := data["today_status"].(map[string]interface{})
	assert.Equal(t, true, today["checked_in"])
}

func TestRouter_InvalidQueryValues(t *testing.T) {
	emp := testEmployee()
	env := newTestEnv(t, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC), emp)

	rec := env.do(t, http.MethodGet, "/api/v1/attendance/my-history?month=x", &emp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/attendance/my-history?month=3", &emp)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
