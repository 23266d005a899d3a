package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/employee"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
)

// EmployeeDirectory resolves the employee record linked to a user account.
type EmployeeDirectory interface {
	ByUserID(ctx context.Context, userID string) (employee.Employee, error)
}

type Handler struct {
	Store     *auth.Store
	Employees EmployeeDirectory
	JWTSecret string
}

func NewHandler(store *auth.Store, employees EmployeeDirectory, jwtSecret string) *Handler {
	return &Handler{Store: store, Employees: employees, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.With(middleware.RequireRole()).Get("/me", h.handleMe)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Username == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "INVALID_PAYLOAD", "username and password required", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Store.FindUserByUsername(r.Context(), payload.Username)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, time.Duration(auth.TokenTTLHours)*time.Hour)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "TOKEN_ERROR", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	}, middleware.GetRequestID(r.Context()))
}

// handleMe returns the authenticated account plus the linked employee
// record; accounts without one (e.g. the CEO login) carry a null employee.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var empPayload any
	emp, err := h.Employees.ByUserID(r.Context(), user.UserID)
	switch {
	case err == nil:
		empPayload = emp
	case errors.Is(err, employee.ErrNotFound):
	default:
		slog.Warn("employee lookup for me failed", "err", err)
	}

	api.Success(w, map[string]any{
		"id":       user.UserID,
		"username": user.Username,
		"role":     user.Role,
		"employee": empPayload,
	}, middleware.GetRequestID(r.Context()))
}
