package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/roundonehq/r1-interview-api/internal/config"
	"github.com/roundonehq/r1-interview-api/internal/database"
	"github.com/roundonehq/r1-interview-api/internal/handler"
	"github.com/roundonehq/r1-interview-api/internal/middleware"
	"github.com/roundonehq/r1-interview-api/internal/models"
	"github.com/roundonehq/r1-interview-api/internal/repository"
	"github.com/roundonehq/r1-interview-api/internal/router"
	"github.com/roundonehq/r1-interview-api/internal/service"
	"github.com/roundonehq/r1-interview-api/pkg/ai"
	cloud "github.com/roundonehq/r1-interview-api/pkg/cloudinary"
	"github.com/roundonehq/r1-interview-api/pkg/mailer"
	"github.com/roundonehq/r1-interview-api/pkg/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Candidate{}, &models.Admin{}, &models.Question{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not set, dashboard caching disabled")
	}

	var recordings cloud.RecordingStore
	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		recordings = uploader
	} else {
		logger.Warn().Msg("cloudinary not configured, recordings will not be archived")
	}

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		smtp, err := mailer.New(mailer.Config{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.FromEmail,
			BaseURL:   cfg.BaseURL,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create mailer: %v", err)
		}
		mail = smtp
	} else {
		logger.Warn().Msg("smtp not configured, invite emails disabled")
	}

	evaluator, err := buildEvaluator(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create evaluator: %v", err)
	}

	transcriber := speech.NewGoogleTranscriber(speech.GoogleConfig{
		CredentialsFile: cfg.GoogleCredentialsFile,
		LanguageCode:    cfg.SpeechLanguageCode,
		Logger:          logger,
	})

	validate := validator.New(validator.WithRequiredStructEnabled())

	candidateRepo := repository.NewCandidateRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	questionService, err := service.NewQuestionService(questionRepo, logger)
	if err != nil {
		log.Fatalf("failed to create question service: %v", err)
	}
	if err := questionService.SeedFromFile(context.Background(), cfg.QuestionBankPath); err != nil {
		log.Fatalf("failed to seed question bank: %v", err)
	}

	evaluationService := service.NewEvaluationService(candidateRepo, evaluator, validate, logger)
	interviewService := service.NewInterviewService(candidateRepo, questionRepo, transcriber, recordings, evaluationService, validate, logger)
	authService := service.NewAuthService(candidateRepo, adminRepo, cfg.JWTSecret, validate, logger)
	inviteService := service.NewInviteService(candidateRepo, mail, validate, logger)
	dashboardService := service.NewAdminDashboardService(candidateRepo, redisClient, cfg.DashboardCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	interviewHandler := handler.NewInterviewHandler(interviewService, questionService, logger)
	adminHandler := handler.NewAdminHandler(inviteService, dashboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    32 * 1024 * 1024, // audio uploads
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:      authHandler,
		InterviewHandler: interviewHandler,
		AdminHandler:     adminHandler,
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildEvaluator(cfg config.Config, logger zerolog.Logger) (ai.Evaluator, error) {
	if cfg.AIProvider == "openai" {
		return ai.NewOpenAIEvaluator(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
	}

	// Gemini is the default; a missing key surfaces on the first evaluation.
	return ai.NewGeminiEvaluator(ai.GeminiConfig{
		APIKey: cfg.GeminiAPIKey,
		Logger: logger,
	}), nil
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
