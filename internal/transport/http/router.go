package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/job-portal-api/internal/application/admin"
	"github.com/job-portal-api/internal/application/auth"
	"github.com/job-portal-api/internal/application/job"
	"github.com/job-portal-api/internal/config"
	"github.com/job-portal-api/internal/domain"
	"github.com/job-portal-api/internal/infrastructure/postgres"
	s3infra "github.com/job-portal-api/internal/infrastructure/s3"
	"github.com/job-portal-api/internal/infrastructure/smtp"
	"github.com/job-portal-api/internal/infrastructure/sns"
	"github.com/job-portal-api/internal/infrastructure/token"
	"github.com/job-portal-api/internal/pkg/otp"
	"github.com/job-portal-api/internal/transport/http/handler"
	appmiddleware "github.com/job-portal-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Identities    *postgres.IdentityRepo
	Jobs          *postgres.JobRepo
	Applications  *postgres.ApplicationRepo
	Resumes       *s3infra.Store
	Mailer        smtp.Mailer
	SMSSender     sns.SMSSender
	TokenProvider *token.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the OTP-dispatching and
	// credential endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		Identities:        deps.Identities,
		Mailer:            deps.Mailer,
		SMSSender:         deps.SMSSender,
		Tokens:            deps.TokenProvider,
		OTP:               otp.NewIssuer(cfg.OTPTTL),
		AdminID:           cfg.AdminID,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})
	jobSvc := job.NewService(deps.Identities, deps.Jobs, deps.Applications, deps.Resumes)
	adminSvc := admin.NewService(deps.Identities, deps.Applications, deps.Resumes)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	jobH := handler.NewJobHandler(jobSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/register/{role}", authH.Register)
		r.Post("/register/{role}/confirm", authH.ConfirmRegistration)
		r.With(sensitiveRL.Limit).Post("/login/request", authH.RequestLoginOTP)
		r.Post("/login/confirm", authH.ConfirmLogin)
		r.With(sensitiveRL.Limit).Post("/admin/login", authH.AdminLogin)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.TokenProvider))

			r.Post("/jobs", jobH.Create)
			r.Get("/jobs/posted", jobH.ListPosted)
			r.Get("/jobs/active", jobH.ListActive)
			r.Delete("/jobs/{id}", jobH.Delete)
			r.Get("/jobs/{id}/applications", jobH.ListApplicants)
			r.Post("/jobs/{id}/apply", jobH.Apply)
			r.Get("/applications/{id}/resume", jobH.Resume)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/admin/users", adminH.ListUsers)
				r.Delete("/admin/users/{type}/{id}", adminH.DeleteUser)
			})
		})
	})

	return r
}
