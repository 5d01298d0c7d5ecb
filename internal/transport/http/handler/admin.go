package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/job-portal-api/internal/application/admin"
	"github.com/job-portal-api/internal/domain"
	"github.com/job-portal-api/internal/transport/http/middleware"
)

// AdminHandler handles the admin user-management endpoints.
type AdminHandler struct {
	svc admin.Service
}

func NewAdminHandler(svc admin.Service) *AdminHandler { return &AdminHandler{svc: svc} }

// ListUsers lists all identities of the type in the "type" query parameter.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userType, err := domain.ParseIdentityRole(r.URL.Query().Get("type"))
	if err != nil {
		httpError(w, err)
		return
	}
	users, err := h.svc.ListUsers(r.Context(), claims.Role, userType)
	if err != nil {
		httpError(w, err)
		return
	}
	if users == nil {
		users = []domain.Identity{}
	}
	writeJSON(w, http.StatusOK, UsersEnvelope{Users: users})
}

// DeleteUser removes the identity named by the path. Jobs and applications
// owned by it cascade.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userType, err := domain.ParseIdentityRole(chi.URLParam(r, "type"))
	if err != nil {
		httpError(w, err)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), claims.Role, userType, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "User deleted successfully!"})
}
