package evaluationhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/audit"
	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/evaluation"
	"perfeval/internal/domain/kpi"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
)

type Handler struct {
	Service *evaluation.Service
	Audit   audit.Recorder
}

func NewHandler(service *evaluation.Service, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO, auth.RoleManager)).Post("/", h.handleCreate)
	})
	r.Route("/results", func(r chi.Router) {
		r.With(middleware.RequireRole()).Get("/my/{periodID}", h.handleMyResult)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		EmployeeID string                      `json:"employeeId"`
		PeriodID   string                      `json:"periodId"`
		Scores     []evaluation.SubmittedScore `json:"scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.EmployeeID == "" || payload.PeriodID == "" {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "employeeId and periodId required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.Create(r.Context(), user, payload.EmployeeID, payload.PeriodID, payload.Scores)
	if err != nil {
		status, code, message := mapCreateError(err)
		api.Fail(w, status, code, message, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "evaluation.create", "evaluation", result.EvaluationID, middleware.GetRequestID(r.Context()), map[string]any{
		"employeeId": payload.EmployeeID,
		"periodId":   payload.PeriodID,
		"finalScore": result.FinalScore,
	}); err != nil {
		slog.Warn("audit evaluation.create failed", "err", err)
	}
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}

func mapCreateError(err error) (int, string, string) {
	switch {
	case errors.Is(err, evaluation.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "not allowed to evaluate this employee"
	case errors.Is(err, evaluation.ErrEmployeeNotFound):
		return http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "employee not found"
	case errors.Is(err, evaluation.ErrPeriodNotFound):
		return http.StatusNotFound, "PERIOD_NOT_FOUND", "period not found"
	case errors.Is(err, evaluation.ErrPeriodClosed):
		return http.StatusConflict, "PERIOD_CLOSED", "period is closed"
	case errors.Is(err, kpi.ErrTemplateNotFound):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND", "no template applies to this employee"
	case errors.Is(err, evaluation.ErrTemplateEmpty):
		return http.StatusConflict, "TEMPLATE_EMPTY", "resolved template has no active items"
	case errors.Is(err, evaluation.ErrKPINotInTemplate):
		return http.StatusBadRequest, "KPI_NOT_IN_TEMPLATE", err.Error()
	case errors.Is(err, evaluation.ErrDuplicateKPIScore):
		return http.StatusBadRequest, "DUPLICATE_KPI_SCORE", err.Error()
	case errors.Is(err, evaluation.ErrMissingKPIScore):
		return http.StatusBadRequest, "MISSING_KPI_SCORE", err.Error()
	case errors.Is(err, evaluation.ErrScoreOutOfRange):
		return http.StatusBadRequest, "INVALID_SCORE_RANGE", err.Error()
	case errors.Is(err, evaluation.ErrEvaluationExists):
		return http.StatusConflict, "EVALUATION_ALREADY_EXISTS", "evaluation already exists for this employee and period"
	default:
		return http.StatusInternalServerError, "EVALUATION_CREATE_FAILED", "failed to create evaluation"
	}
}

func (h *Handler) handleMyResult(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	periodID := chi.URLParam(r, "periodID")

	result, err := h.Service.MyResult(r.Context(), user, periodID)
	if err != nil {
		switch {
		case errors.Is(err, evaluation.ErrEmployeeLinkNotFound):
			api.Fail(w, http.StatusNotFound, "EMPLOYEE_LINK_NOT_FOUND", "no employee record linked to this account", middleware.GetRequestID(r.Context()))
		case errors.Is(err, evaluation.ErrEvaluationNotFound):
			api.Fail(w, http.StatusNotFound, "EVALUATION_NOT_FOUND", "no evaluation for this period", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "RESULT_FETCH_FAILED", "failed to fetch result", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}
