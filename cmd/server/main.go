// @title beachtrack API
// @version 1.0
// @description Career profile import, activity log and development recommendations.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	_ "beachtrack/docs"
	"beachtrack/internal/auth"
	"beachtrack/internal/auth/firebase"
	"beachtrack/internal/auth/local"
	"beachtrack/internal/config"
	"beachtrack/internal/handler"
	"beachtrack/internal/llm"
	"beachtrack/internal/llm/gemini"
	"beachtrack/internal/middleware"
	"beachtrack/internal/pdftext"
	"beachtrack/internal/port"
	"beachtrack/internal/recommender"
	"beachtrack/internal/repository/postgres"
	"beachtrack/internal/router"
	"beachtrack/internal/service"
	"beachtrack/internal/storage/noop"
	s3storage "beachtrack/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	profileRepo := postgres.NewProfileRepo(db)
	activityRepo := postgres.NewActivityRepo(db)
	recoRepo := postgres.NewRecommendationRepo(db)

	// Initialize storage; archiving is off without a bucket
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Println("PDF archiving disabled: no S3 bucket configured")
		storage = noop.NewNoopStorage()
	}

	verifier, err := newTokenVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	// Text generation is optional; without it every request gets the fallback set
	registry := llm.NewRegistry()
	registry.Register("gemini", gemini.Factory)
	var generator port.TextGenerator
	if cfg.AI.Primary.APIKey == "" {
		log.Println("AI recommendations disabled: no API key configured, serving fallback recommendations")
	} else {
		generator, err = registry.FromConfig(ctx, &cfg.AI)
		if err != nil {
			return fmt.Errorf("failed to initialize AI provider: %w", err)
		}
	}
	rec := recommender.New(generator, cfg.AI.Timeout())

	// Initialize services
	importSvc := service.NewImportService(profileRepo, pdftext.NewExtractor(), storage, &cfg.S3)
	profileSvc := service.NewProfileService(profileRepo)
	activitySvc := service.NewActivityService(activityRepo)
	recoSvc := service.NewRecommendationService(profileRepo, recoRepo, rec, cfg.AI.HistorySize)

	if err := handler.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	r := router.Setup(verifier, router.Handlers{
		Import:         handler.NewImportHandler(importSvc, cfg.Upload.MaxBytes()),
		Profile:        handler.NewProfileHandler(profileSvc),
		Activity:       handler.NewActivityHandler(activitySvc),
		Recommendation: handler.NewRecommendationHandler(recoSvc),
		Health:         handler.NewHealthHandler(db),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RecommendationLimiter: middleware.NewUserRateLimiter(
			cfg.RateLimit.RecommendationsPerMinute, cfg.RateLimit.RecommendationsBurst),
		EnableSwagger: cfg.Server.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on %s (%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func newTokenVerifier(cfg config.AuthConfig) (port.TokenVerifier, error) {
	var verifier port.TokenVerifier
	switch cfg.Provider {
	case "firebase":
		if cfg.FirebaseProjectID == "" {
			return nil, errors.New("auth.firebase_project_id is required for the firebase provider")
		}
		verifier = firebase.NewVerifier(cfg.FirebaseProjectID)
	case "local":
		verifier = local.NewIssuer(cfg)
	default:
		return nil, fmt.Errorf("unknown auth provider: %s", cfg.Provider)
	}
	if cfg.MockEnabled {
		log.Println("Mock ID tokens are accepted")
	}
	return auth.WithMockTokens(verifier, cfg.MockEnabled), nil
}
