package employeehandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/access"
	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/employee"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
)

type Handler struct {
	Store  *employee.Store
	Scoper *access.Scoper
}

func NewHandler(store *employee.Store, scoper *access.Scoper) *Handler {
	return &Handler{Store: store, Scoper: scoper}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleCEO, auth.RoleManager)).Get("/", h.handleList)
	})
}

// handleList returns every employee for elevated roles; a manager only sees
// direct reports.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	if auth.IsElevated(user.Role) {
		employees, err := h.Store.ListAll(r.Context())
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "EMPLOYEE_LIST_FAILED", "failed to list employees", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, employees, middleware.GetRequestID(r.Context()))
		return
	}

	managerEmployeeID, err := h.Scoper.ActorEmployeeID(r.Context(), user)
	if err != nil {
		slog.Warn("employee list manager lookup failed", "err", err)
		api.Success(w, []employee.Employee{}, middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Store.ListDirectReports(r.Context(), managerEmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "EMPLOYEE_LIST_FAILED", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}
