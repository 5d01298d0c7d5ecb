package handler

import (
	"encoding/json"
	"net/http"

	"github.com/job-portal-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TokenEnvelope wraps login responses.
type TokenEnvelope struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JobsEnvelope wraps job listings.
type JobsEnvelope struct {
	Jobs []domain.Job `json:"jobs"`
}

// ApplicantsEnvelope wraps the applicant list of a job.
type ApplicantsEnvelope struct {
	Applications []domain.Applicant `json:"applications"`
}

// UsersEnvelope wraps admin user listings.
type UsersEnvelope struct {
	Users []domain.Identity `json:"users"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
