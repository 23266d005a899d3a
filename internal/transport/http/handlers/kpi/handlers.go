package kpihandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/access"
	"perfeval/internal/domain/audit"
	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/employee"
	"perfeval/internal/domain/kpi"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

type Handler struct {
	Service   *kpi.Service
	Employees *employee.Store
	Scoper    *access.Scoper
	Audit     audit.Recorder
}

func NewHandler(service *kpi.Service, employees *employee.Store, scoper *access.Scoper, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Employees: employees, Scoper: scoper, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/kpis", func(r chi.Router) {
		r.With(middleware.RequireRole()).Get("/", h.handleListKPIs)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO)).Post("/", h.handleCreateKPI)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO)).Put("/{kpiID}", h.handleUpdateKPI)
	})
	r.Route("/templates", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO, auth.RoleManager)).Get("/", h.handleListTemplates)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO)).Post("/", h.handleCreateTemplate)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO, auth.RoleManager)).Get("/{templateID}/items", h.handleTemplateItems)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO)).Delete("/{templateID}", h.handleDeactivateTemplate)
		r.With(middleware.RequireRole()).Get("/applicable/{employeeID}", h.handleApplicable)
	})
}

func (h *Handler) handleListKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.Service.ListKPIs(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "KPI_LIST_FAILED", "failed to list kpis", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, kpis, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateKPI(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		Title    string  `json:"title"`
		Type     string  `json:"type"`
		ScaleMin float64 `json:"scaleMin"`
		ScaleMax float64 `json:"scaleMax"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Enum("type", payload.Type, []string{kpi.TypeCore, kpi.TypeJob, kpi.TypeStrategic}, "type must be CORE, JOB or STRATEGIC")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateKPI(r.Context(), kpi.KPI{
		Title:    payload.Title,
		Type:     payload.Type,
		ScaleMin: payload.ScaleMin,
		ScaleMax: payload.ScaleMax,
	})
	if err != nil {
		if errors.Is(err, kpi.ErrInvalidScaleRange) {
			api.Fail(w, http.StatusBadRequest, "INVALID_SCALE_RANGE", "scale min must be below scale max", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "KPI_CREATE_FAILED", "failed to create kpi", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "kpi.create", "kpi", id, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit kpi.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateKPI(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	kpiID := chi.URLParam(r, "kpiID")

	var payload struct {
		Title    string  `json:"title"`
		Type     string  `json:"type"`
		ScaleMin float64 `json:"scaleMin"`
		ScaleMax float64 `json:"scaleMax"`
		Active   bool    `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.UpdateKPI(r.Context(), kpi.KPI{
		ID:       kpiID,
		Title:    payload.Title,
		Type:     payload.Type,
		ScaleMin: payload.ScaleMin,
		ScaleMax: payload.ScaleMax,
		Active:   payload.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, kpi.ErrInvalidScaleRange):
			api.Fail(w, http.StatusBadRequest, "INVALID_SCALE_RANGE", "scale min must be below scale max", middleware.GetRequestID(r.Context()))
		case errors.Is(err, kpi.ErrKPINotFound):
			api.Fail(w, http.StatusNotFound, "KPI_NOT_FOUND", "kpi not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "KPI_UPDATE_FAILED", "failed to update kpi", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "kpi.update", "kpi", kpiID, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit kpi.update failed", "err", err)
	}
	api.Success(w, map[string]string{"id": kpiID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListTemplates(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "TEMPLATE_LIST_FAILED", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		AppliesToUnit     *string                 `json:"appliesToUnit"`
		AppliesToJobTitle *string                 `json:"appliesToJobTitle"`
		Version           int                     `json:"version"`
		Items             []kpi.TemplateItemInput `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreateTemplate(r.Context(), payload.AppliesToUnit, payload.AppliesToJobTitle, payload.Version, payload.Items)
	if err != nil {
		switch {
		case errors.Is(err, kpi.ErrItemsRequired):
			api.Fail(w, http.StatusBadRequest, "ITEMS_REQUIRED", "at least one item is required", middleware.GetRequestID(r.Context()))
		case errors.Is(err, kpi.ErrInvalidItem):
			api.Fail(w, http.StatusBadRequest, "INVALID_ITEM", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, kpi.ErrDuplicateKPIInTemplate):
			api.Fail(w, http.StatusBadRequest, "DUPLICATE_KPI_IN_TEMPLATE", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, kpi.ErrWeightSum):
			api.Fail(w, http.StatusBadRequest, "WEIGHTS_MUST_SUM_TO_100", "item weights must sum to 100", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "TEMPLATE_CREATE_FAILED", "failed to create template", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "template.create", "kpi_template", id, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit template.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTemplateItems(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")
	items, err := h.Service.TemplateItems(r.Context(), templateID)
	if err != nil {
		if errors.Is(err, kpi.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "TEMPLATE_ITEMS_FAILED", "failed to list template items", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivateTemplate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	templateID := chi.URLParam(r, "templateID")

	if err := h.Service.DeactivateTemplate(r.Context(), templateID); err != nil {
		if errors.Is(err, kpi.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "TEMPLATE_DEACTIVATE_FAILED", "failed to deactivate template", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "template.deactivate", "kpi_template", templateID, middleware.GetRequestID(r.Context()), nil); err != nil {
		slog.Warn("audit template.deactivate failed", "err", err)
	}
	api.Success(w, map[string]string{"id": templateID}, middleware.GetRequestID(r.Context()))
}

// handleApplicable resolves the template applying to one employee. The
// caller must be allowed to act on that employee, so employees can only
// look up their own.
func (h *Handler) handleApplicable(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	allowed, err := h.Scoper.CanActOn(r.Context(), user, employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "TEMPLATE_RESOLVE_FAILED", "failed to resolve template", middleware.GetRequestID(r.Context()))
		return
	}
	if !allowed {
		api.Fail(w, http.StatusForbidden, "FORBIDDEN", "not allowed to view this employee", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.ByID(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "TEMPLATE_RESOLVE_FAILED", "failed to resolve template", middleware.GetRequestID(r.Context()))
		return
	}

	resolved, err := h.Service.Resolve(r.Context(), emp.Unit, emp.JobTitle)
	if err != nil {
		if errors.Is(err, kpi.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "no template applies to this employee", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "TEMPLATE_RESOLVE_FAILED", "failed to resolve template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, resolved, middleware.GetRequestID(r.Context()))
}
