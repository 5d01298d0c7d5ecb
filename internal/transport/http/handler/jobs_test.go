package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/job-portal-api/internal/domain"
	"github.com/job-portal-api/internal/infrastructure/token"
	"github.com/job-portal-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- mock ---

type mockJobSvc struct{ mock.Mock }

func (m *mockJobSvc) PostJob(ctx context.Context, subject string, role domain.Role, req domain.CreateJobRequest) (*domain.Job, error) {
	args := m.Called(ctx, subject, role, req)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockJobSvc) ListPostedJobs(ctx context.Context, subject string, role domain.Role) ([]domain.Job, error) {
	args := m.Called(ctx, subject, role)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *mockJobSvc) DeleteJob(ctx context.Context, subject string, role domain.Role, jobID string) error {
	return m.Called(ctx, subject, role, jobID).Error(0)
}
func (m *mockJobSvc) ListApplicants(ctx context.Context, subject string, role domain.Role, jobID string) ([]domain.Applicant, error) {
	args := m.Called(ctx, subject, role, jobID)
	return args.Get(0).([]domain.Applicant), args.Error(1)
}
func (m *mockJobSvc) GetResume(ctx context.Context, subject string, role domain.Role, applicationID string) (string, io.ReadCloser, error) {
	args := m.Called(ctx, subject, role, applicationID)
	if rc, _ := args.Get(1).(io.ReadCloser); rc != nil {
		return args.String(0), rc, args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}
func (m *mockJobSvc) ListActiveJobs(ctx context.Context, subject string, role domain.Role) ([]domain.Job, error) {
	args := m.Called(ctx, subject, role)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *mockJobSvc) Apply(ctx context.Context, subject string, role domain.Role, jobID, filename string, resume io.Reader) error {
	return m.Called(ctx, subject, role, jobID, filename, resume).Error(0)
}

// --- helpers ---

// withClaims injects token claims into the request context, as the auth
// middleware would.
func withClaims(r *http.Request, subject string, role domain.Role) *http.Request {
	claims := &token.Claims{Subject: subject, Role: role}
	return r.WithContext(middleware.WithClaims(r.Context(), claims))
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// --- list envelope tests ---

// A caller with no postings gets an empty array, not null.
func TestListPosted_EmptyRendersArray(t *testing.T) {
	svc := &mockJobSvc{}
	svc.On("ListPostedJobs", mock.Anything, "emp1", domain.RoleEmployer).Return([]domain.Job(nil), nil)

	h := NewJobHandler(svc)
	r := withClaims(httptest.NewRequest(http.MethodGet, "/v1/jobs/posted", nil), "emp1", domain.RoleEmployer)
	rr := httptest.NewRecorder()
	h.ListPosted(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"jobs":[]}`, rr.Body.String())
}

func TestListActive_EmptyRendersArray(t *testing.T) {
	svc := &mockJobSvc{}
	svc.On("ListActiveJobs", mock.Anything, "js1", domain.RoleJobseeker).Return([]domain.Job(nil), nil)

	h := NewJobHandler(svc)
	r := withClaims(httptest.NewRequest(http.MethodGet, "/v1/jobs/active", nil), "js1", domain.RoleJobseeker)
	rr := httptest.NewRecorder()
	h.ListActive(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"jobs":[]}`, rr.Body.String())
}

func TestListApplicants_EmptyRendersArray(t *testing.T) {
	svc := &mockJobSvc{}
	svc.On("ListApplicants", mock.Anything, "emp1", domain.RoleEmployer, "job1").
		Return([]domain.Applicant(nil), nil)

	h := NewJobHandler(svc)
	r := withClaims(httptest.NewRequest(http.MethodGet, "/v1/jobs/job1/applications", nil), "emp1", domain.RoleEmployer)
	r = withChiID(r, "job1")
	rr := httptest.NewRecorder()
	h.ListApplicants(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"applications":[]}`, rr.Body.String())
}

func TestListPosted_NoClaims(t *testing.T) {
	h := NewJobHandler(&mockJobSvc{})
	rr := httptest.NewRecorder()
	h.ListPosted(rr, httptest.NewRequest(http.MethodGet, "/v1/jobs/posted", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDelete_ServiceErrorMapped(t *testing.T) {
	svc := &mockJobSvc{}
	svc.On("DeleteJob", mock.Anything, "emp1", domain.RoleEmployer, "missing").Return(domain.ErrNotFound)

	h := NewJobHandler(svc)
	r := withClaims(httptest.NewRequest(http.MethodDelete, "/v1/jobs/missing", nil), "emp1", domain.RoleEmployer)
	r = withChiID(r, "missing")
	rr := httptest.NewRecorder()
	h.Delete(rr, r)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
