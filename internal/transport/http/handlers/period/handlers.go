package periodhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/audit"
	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/period"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

type Handler struct {
	Store *period.Store
	Audit audit.Recorder
}

func NewHandler(store *period.Store, auditSvc audit.Recorder) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/periods", func(r chi.Router) {
		r.With(middleware.RequireRole()).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO)).Post("/{periodID}/close", h.handleClose)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Store.ListPeriods(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "PERIOD_LIST_FAILED", "failed to list periods", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, periods, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		Name       string `json:"name"`
		PeriodType string `json:"periodType"`
		StartDate  string `json:"startDate"`
		EndDate    string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Enum("periodType", payload.PeriodType, []string{period.TypeMonthly, period.TypeQuarterly, period.TypeYearly}, "periodType must be MONTHLY, QUARTERLY or YEARLY")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	startDate, err := shared.ParseDate(payload.StartDate)
	if err != nil || startDate.IsZero() {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid start date", middleware.GetRequestID(r.Context()))
		return
	}
	endDate, err := shared.ParseDate(payload.EndDate)
	if err != nil || endDate.IsZero() {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid end date", middleware.GetRequestID(r.Context()))
		return
	}
	if endDate.Before(startDate) {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "end date must be on or after start date", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreatePeriod(r.Context(), payload.Name, payload.PeriodType, startDate, endDate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "PERIOD_CREATE_FAILED", "failed to create period", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "period.create", "evaluation_period", id, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit period.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	periodID := chi.URLParam(r, "periodID")

	if err := h.Store.ClosePeriod(r.Context(), periodID); err != nil {
		if errors.Is(err, period.ErrPeriodNotFound) {
			api.Fail(w, http.StatusNotFound, "PERIOD_NOT_FOUND", "period not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "PERIOD_CLOSE_FAILED", "failed to close period", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "period.close", "evaluation_period", periodID, middleware.GetRequestID(r.Context()), nil); err != nil {
		slog.Warn("audit period.close failed", "err", err)
	}
	api.Success(w, map[string]string{"id": periodID, "status": period.StatusClosed}, middleware.GetRequestID(r.Context()))
}
