package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/job-portal-api/internal/config"
	"github.com/job-portal-api/internal/infrastructure/postgres"
	s3infra "github.com/job-portal-api/internal/infrastructure/s3"
	"github.com/job-portal-api/internal/infrastructure/smtp"
	"github.com/job-portal-api/internal/infrastructure/sns"
	"github.com/job-portal-api/internal/infrastructure/token"
	transporthttp "github.com/job-portal-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Postgres pool and schema bootstrap (creates tables if they don't exist).
	pool, err := postgres.NewPool(context.Background(), cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := postgres.Bootstrap(context.Background(), pool); err != nil {
		log.Fatalf("postgres bootstrap: %v", err)
	}

	// Session token provider. Tokens gate every protected route, so a missing
	// secret is fatal.
	tokenProvider, err := token.NewProvider(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("token provider: %v", err)
	}

	// S3 resume store.
	s3Client, err := s3infra.NewClient(cfg)
	if err != nil {
		log.Fatalf("s3 client: %v", err)
	}
	resumeStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender. If SNS cannot be configured the disabled sender keeps
	// the process up; OTP dispatch then fails with a delivery error.
	smsSender, err := sns.NewSender(cfg)
	if err != nil {
		log.Printf("WARN: SNS sender not available, SMS dispatch disabled: %v", err)
		smsSender = sns.Disabled()
	}

	deps := &transporthttp.Deps{
		Identities:    postgres.NewIdentityRepo(pool),
		Jobs:          postgres.NewJobRepo(pool),
		Applications:  postgres.NewApplicationRepo(pool),
		Resumes:       resumeStore,
		Mailer:        mailer,
		SMSSender:     smsSender,
		TokenProvider: tokenProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
