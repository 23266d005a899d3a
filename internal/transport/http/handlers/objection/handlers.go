package objectionhandler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/audit"
	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/objection"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
)

type Handler struct {
	Service *objection.Service
	Audit   audit.Recorder
}

func NewHandler(service *objection.Service, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/objections", func(r chi.Router) {
		r.With(middleware.RequireRole()).Post("/", h.handleCreate)
		r.With(middleware.RequireRole()).Get("/my", h.handleListMine)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO, auth.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO, auth.RoleManager)).Post("/{objectionID}/review", h.handleReview)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO, auth.RoleManager)).Post("/{objectionID}/resolve", h.handleResolve)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO)).Get("/export", h.handleExport)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		EvaluationID string `json:"evaluationId"`
		Message      string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.Create(r.Context(), user, payload.EvaluationID, payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, objection.ErrMessageRequired):
			api.Fail(w, http.StatusBadRequest, "MESSAGE_REQUIRED", "evaluationId and message required", middleware.GetRequestID(r.Context()))
		case errors.Is(err, objection.ErrEmployeeLinkNotFound):
			api.Fail(w, http.StatusNotFound, "EMPLOYEE_LINK_NOT_FOUND", "no employee record linked to this account", middleware.GetRequestID(r.Context()))
		case errors.Is(err, objection.ErrForbidden):
			api.Fail(w, http.StatusForbidden, "FORBIDDEN", "objections may only target your own evaluation", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "OBJECTION_CREATE_FAILED", "failed to create objection", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "objection.create", "objection", id, middleware.GetRequestID(r.Context()), map[string]string{"evaluationId": payload.EvaluationID}); err != nil {
		slog.Warn("audit objection.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id, "status": objection.StatusOpen}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	items, err := h.Service.ListMine(r.Context(), user, r.URL.Query().Get("evaluationId"))
	if err != nil {
		if errors.Is(err, objection.ErrEmployeeLinkNotFound) {
			api.Fail(w, http.StatusNotFound, "EMPLOYEE_LINK_NOT_FOUND", "no employee record linked to this account", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "OBJECTION_LIST_FAILED", "failed to list objections", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	items, err := h.Service.List(r.Context(), user, r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "OBJECTION_LIST_FAILED", "failed to list objections", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "review")
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "resolve")
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, action string) {
	user, _ := middleware.GetUser(r.Context())
	objectionID := chi.URLParam(r, "objectionID")

	// responseMessage is optional on review, so a body-less POST is fine.
	var payload struct {
		ResponseMessage string `json:"responseMessage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	var err error
	if action == "review" {
		err = h.Service.Review(r.Context(), user, objectionID, payload.ResponseMessage)
	} else {
		err = h.Service.Resolve(r.Context(), user, objectionID, payload.ResponseMessage)
	}
	if err != nil {
		switch {
		case errors.Is(err, objection.ErrObjectionNotFound):
			api.Fail(w, http.StatusNotFound, "OBJECTION_NOT_FOUND", "objection not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, objection.ErrForbidden):
			api.Fail(w, http.StatusForbidden, "FORBIDDEN", "not allowed to handle this objection", middleware.GetRequestID(r.Context()))
		case errors.Is(err, objection.ErrObjectionResolved):
			api.Fail(w, http.StatusConflict, "OBJECTION_RESOLVED", "objection is already resolved", middleware.GetRequestID(r.Context()))
		case errors.Is(err, objection.ErrResponseRequired):
			api.Fail(w, http.StatusBadRequest, "RESPONSE_REQUIRED", "responseMessage required to resolve", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "OBJECTION_UPDATE_FAILED", "failed to update objection", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "objection."+action, "objection", objectionID, middleware.GetRequestID(r.Context()), nil); err != nil {
		slog.Warn("audit objection transition failed", "action", action, "err", err)
	}
	api.Success(w, map[string]string{"id": objectionID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Export(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "OBJECTION_EXPORT_FAILED", "failed to export objections", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=objections.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "status", "created_at", "period", "employee_code", "full_name", "unit", "job_title", "evaluation_id", "message", "response"}); err != nil {
		slog.Warn("objection export header failed", "err", err)
	}
	for _, row := range rows {
		response := ""
		if row.ResponseMessage != nil {
			response = *row.ResponseMessage
		}
		record := []string{
			row.ID,
			row.Status,
			row.CreatedAt.Format(time.RFC3339),
			row.PeriodName,
			row.EmployeeCode,
			row.FullName,
			row.Unit,
			row.JobTitle,
			row.EvaluationID,
			row.Message,
			response,
		}
		if err := writer.Write(record); err != nil {
			slog.Warn("objection export row failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("objection export flush failed", "err", err)
	}
}
