package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/job-portal-api/internal/application/auth"
	"github.com/job-portal-api/internal/domain"
	"github.com/job-portal-api/internal/pkg/validate"
)

// AuthHandler handles registration, verification and login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

// Register starts a registration for the role in the URL. The profile payload
// differs per role, so decoding branches on it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	role, err := domain.ParseIdentityRole(chi.URLParam(r, "role"))
	if err != nil {
		httpError(w, err)
		return
	}

	switch role {
	case domain.RoleJobseeker:
		var req domain.RegisterJobseekerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		err = h.svc.RegisterJobseeker(r.Context(), req)
	case domain.RoleEmployer:
		var req domain.RegisterEmployerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		err = h.svc.RegisterEmployer(r.Context(), req)
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{
		Message: fmt.Sprintf("OTPs sent successfully. They are valid for %.0f minutes!", h.svc.OTPValidity().Minutes()),
	})
}

// ConfirmRegistration validates both channel OTPs and flips the identity to
// verified.
func (h *AuthHandler) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	role, err := domain.ParseIdentityRole(chi.URLParam(r, "role"))
	if err != nil {
		httpError(w, err)
		return
	}
	var req domain.ConfirmRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.ConfirmRegistration(r.Context(), role, req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Registration successful!"})
}

// RequestLoginOTP issues a fresh phone OTP for a verified identity.
func (h *AuthHandler) RequestLoginOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := domain.ParseIdentityRole(req.Role)
	if err != nil {
		httpError(w, err)
		return
	}
	if err := h.svc.RequestLoginOTP(r.Context(), role, req.Phone); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{
		Message: fmt.Sprintf("OTP sent successfully. It is valid for %.0f minutes!", h.svc.OTPValidity().Minutes()),
	})
}

// ConfirmLogin exchanges the phone OTP for a session token.
func (h *AuthHandler) ConfirmLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := domain.ParseIdentityRole(req.Role)
	if err != nil {
		httpError(w, err)
		return
	}
	tok, err := h.svc.ConfirmLogin(r.Context(), role, req.Phone, req.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{Message: "Login successful!", Token: tok})
}

// AdminLogin checks the configured admin credential.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tok, err := h.svc.AdminLogin(r.Context(), req.ID, req.Password)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{Message: "Login successful!", Token: tok})
}
