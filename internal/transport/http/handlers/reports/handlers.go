package reportshandler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/reports"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleHR, auth.RoleCEO))
		r.Get("/top", h.handleTopPerformers)
		r.Get("/heatmap", h.handleHeatmap)
		r.Get("/unit-period-heatmap", h.handleUnitPeriodHeatmap)
		r.Get("/unit-comparison", h.handleUnitComparison)
		r.Get("/risk", h.handleRiskList)
		r.Get("/trend", h.handleUnitTrend)
		r.Get("/units", h.handleUnits)
		r.Get("/summary.pdf", h.handleSummaryPDF)
	})
}

func (h *Handler) requirePeriodID(w http.ResponseWriter, r *http.Request) (string, bool) {
	periodID := r.URL.Query().Get("periodId")
	if periodID == "" {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "periodId required", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return periodID, true
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

// writeCSV streams header plus rows with an attachment disposition. Write
// errors are logged rather than surfaced since the status line is already
// out.
func writeCSV(w http.ResponseWriter, filename string, header []string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		slog.Warn("report export header failed", "file", filename, "err", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			slog.Warn("report export row failed", "file", filename, "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("report export flush failed", "file", filename, "err", err)
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return formatScore(*v)
}

func (h *Handler) failReport(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	switch {
	case errors.Is(err, reports.ErrPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "PERIOD_NOT_FOUND", "period not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, reports.ErrPreviousPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "PREVIOUS_PERIOD_NOT_FOUND", "no previous period to compare against", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	periodID, ok := h.requirePeriodID(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	top, err := h.Service.TopPerformers(r.Context(), periodID, limit)
	if err != nil {
		h.failReport(w, r, err, "REPORT_FAILED", "failed to build top performers report")
		return
	}

	if wantsCSV(r) {
		rows := make([][]string, 0, len(top))
		for _, p := range top {
			rows = append(rows, []string{p.EmployeeID, p.FullName, p.Unit, p.JobTitle, formatScore(p.FinalScore)})
		}
		writeCSV(w, "top-performers.csv", []string{"employee_id", "full_name", "unit", "job_title", "final_score"}, rows)
		return
	}
	api.Success(w, top, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	periodID, ok := h.requirePeriodID(w, r)
	if !ok {
		return
	}

	hm, err := h.Service.Heatmap(r.Context(), periodID)
	if err != nil {
		h.failReport(w, r, err, "REPORT_FAILED", "failed to build heatmap")
		return
	}

	if wantsCSV(r) {
		header := append([]string{"employee_id", "full_name"}, hm.KPIs...)
		rows := make([][]string, 0, len(hm.Rows))
		for _, row := range hm.Rows {
			record := []string{row.EmployeeID, row.EmployeeName}
			for _, score := range row.Scores {
				record = append(record, formatNullable(score))
			}
			rows = append(rows, record)
		}
		writeCSV(w, "kpi-heatmap.csv", header, rows)
		return
	}
	api.Success(w, hm, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnitPeriodHeatmap(w http.ResponseWriter, r *http.Request) {
	hm, err := h.Service.UnitPeriodHeatmap(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "REPORT_FAILED", "failed to build unit period heatmap", middleware.GetRequestID(r.Context()))
		return
	}

	if wantsCSV(r) {
		header := append([]string{"unit"}, hm.Periods...)
		rows := make([][]string, 0, len(hm.Rows))
		for _, row := range hm.Rows {
			record := []string{row.Unit}
			for _, avg := range row.Averages {
				record = append(record, formatNullable(avg))
			}
			rows = append(rows, record)
		}
		writeCSV(w, "unit-period-heatmap.csv", header, rows)
		return
	}
	api.Success(w, hm, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnitComparison(w http.ResponseWriter, r *http.Request) {
	periodID, ok := h.requirePeriodID(w, r)
	if !ok {
		return
	}

	rows, err := h.Service.UnitComparison(r.Context(), periodID)
	if err != nil {
		h.failReport(w, r, err, "REPORT_FAILED", "failed to build unit comparison")
		return
	}

	if wantsCSV(r) {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{row.Unit, formatScore(row.CurrentAverage), formatNullable(row.PreviousAverage), formatNullable(row.Delta)})
		}
		writeCSV(w, "unit-comparison.csv", []string{"unit", "current_average", "previous_average", "delta"}, records)
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRiskList(w http.ResponseWriter, r *http.Request) {
	periodID, ok := h.requirePeriodID(w, r)
	if !ok {
		return
	}
	threshold := 0.0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			api.Fail(w, http.StatusBadRequest, "INVALID_THRESHOLD", "threshold must be a positive number", middleware.GetRequestID(r.Context()))
			return
		}
		threshold = v
	}

	rows, err := h.Service.RiskList(r.Context(), periodID, threshold)
	if err != nil {
		h.failReport(w, r, err, "REPORT_FAILED", "failed to build risk list")
		return
	}

	if wantsCSV(r) {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{row.EmployeeID, row.FullName, row.Unit, row.JobTitle, formatScore(row.FinalScore)})
		}
		writeCSV(w, "risk-list.csv", []string{"employee_id", "full_name", "unit", "job_title", "final_score"}, records)
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnitTrend(w http.ResponseWriter, r *http.Request) {
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "unit required", middleware.GetRequestID(r.Context()))
		return
	}

	points, err := h.Service.UnitTrend(r.Context(), unit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "REPORT_FAILED", "failed to build unit trend", middleware.GetRequestID(r.Context()))
		return
	}

	if wantsCSV(r) {
		records := make([][]string, 0, len(points))
		for _, p := range points {
			records = append(records, []string{p.PeriodID, p.PeriodName, formatScore(p.Average), strconv.Itoa(p.Count)})
		}
		writeCSV(w, "unit-trend.csv", []string{"period_id", "period_name", "average", "count"}, records)
		return
	}
	api.Success(w, points, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.Service.Units(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "REPORT_FAILED", "failed to list units", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, units, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	periodID, ok := h.requirePeriodID(w, r)
	if !ok {
		return
	}

	data, err := h.Service.Summary(r.Context(), periodID)
	if err != nil {
		h.failReport(w, r, err, "REPORT_PDF_FAILED", "failed to build period summary")
		return
	}

	pdfBytes, err := reports.SummaryPDF(data)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "REPORT_PDF_FAILED", "failed to render period summary", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=period-summary.pdf")
	if _, err := w.Write(pdfBytes); err != nil {
		slog.Warn("summary pdf write failed", "err", err)
	}
}
