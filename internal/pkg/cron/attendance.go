package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/stafftrack/attendance-backend-go/internal/domain/attendance"
	"github.com/stafftrack/attendance-backend-go/internal/pkg/clock"
)

// AttendanceJobs backfills absent records for days that ended without a
// check-in.
type AttendanceJobs struct {
	attendanceService attendance.Service
	clock             clock.Clock
	loc               *time.Location
}

func NewAttendanceJobs(attendanceService attendance.Service, clk clock.Clock, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		clock:             clk,
		loc:               loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees writes absent records for yesterday. The hourly tick
// only acts during the first hour after midnight; the bulk insert skips
// existing records, so the run stays idempotent.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := j.clock.Now().In(j.loc)
	if now.Hour() != 0 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)

	count, err := j.attendanceService.MarkAbsentees(ctx, yesterday)
	if err != nil {
		return err
	}

	slog.Info("Cron: Marked absent employees",
		"count", count,
		"date", yesterday.Format("2006-01-02"))
	return nil
}
