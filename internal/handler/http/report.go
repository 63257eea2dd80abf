package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/stafftrack/attendance-backend-go/internal/domain/report"
	"github.com/stafftrack/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MySummary(w http.ResponseWriter, r *http.Request)
	TeamSummary(w http.ResponseWriter, r *http.Request)
	TodayStatusForAll(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	EmployeeDashboard(w http.ResponseWriter, r *http.Request)
	ManagerDashboard(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// MySummary implements ReportHandler.
func (h *reportHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month, err := intQuery(r, "month")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	year, err := intQuery(r, "year")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.MySummary(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamSummary implements ReportHandler. Manager only.
func (h *reportHandlerImpl) TeamSummary(w http.ResponseWriter, r *http.Request) {
	month, err := intQuery(r, "month")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	year, err := intQuery(r, "year")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.TeamSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TodayStatusForAll implements ReportHandler. Manager only.
func (h *reportHandlerImpl) TodayStatusForAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.TodayStatusForAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements ReportHandler. Manager only; streams matching records as
// a CSV attachment.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	// Exports are unbounded unless the caller asks for a cap.
	if r.URL.Query().Get("limit") == "" {
		filter.Limit = 0
	}

	rows, err := h.reportService.Export(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	if err := cw.Write(report.ExportHeader()); err != nil {
		slog.Error("Failed to write export header", "error", err)
		return
	}
	for _, row := range rows {
		if err := cw.Write(row.FieldValues()); err != nil {
			slog.Error("Failed to write export row", "error", err)
			return
		}
	}
	cw.Flush()
}

// EmployeeDashboard implements ReportHandler.
func (h *reportHandlerImpl) EmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.EmployeeDashboard(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ManagerDashboard implements ReportHandler. Manager only.
func (h *reportHandlerImpl) ManagerDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.ManagerDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
