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

	"github.com/prompt-arena/arena-go-api/internal/config"
	"github.com/prompt-arena/arena-go-api/internal/database"
	"github.com/prompt-arena/arena-go-api/internal/handler"
	"github.com/prompt-arena/arena-go-api/internal/middleware"
	"github.com/prompt-arena/arena-go-api/internal/repository"
	"github.com/prompt-arena/arena-go-api/internal/router"
	"github.com/prompt-arena/arena-go-api/internal/service"
	"github.com/prompt-arena/arena-go-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	}

	challengeRepo, err := repository.NewChallengeRepository(cfg.ChallengesPath, logger)
	if err != nil {
		log.Fatalf("failed to load challenges: %v", err)
	}

	ledgerRepo := repository.NewLedgerRepository(cfg.SubmissionsPath, cfg.CasesPath, logger)

	gateway := ai.NewOpenAIClient(ai.OpenAIConfig{
		BaseURL: cfg.ModelBaseURL,
		APIKey:  cfg.ModelAPIKey,
		Model:   cfg.ModelName,
		Timeout: cfg.ModelTimeout,
		Logger:  logger,
	})
	if cfg.ModelAPIKey == "" {
		logger.Warn().Msg("no model credential configured; grading requests will fail until ARENA_MODEL_API_KEY is set")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	generator := service.NewGenerator(gateway, cfg.GenerationMaxTokens, logger)
	judge := service.NewJudge(gateway, cfg.JudgeMaxTokens, logger)
	gradingService := service.NewGradingService(challengeRepo, generator, judge, logger)
	submissionService := service.NewSubmissionService(gradingService, ledgerRepo, validate, logger)
	leaderboardService := service.NewLeaderboardService(ledgerRepo, cache, cfg.LeaderboardCacheTTL, logger)

	challengeHandler := handler.NewChallengeHandler(challengeRepo, logger)
	gradeHandler := handler.NewGradeHandler(submissionService, logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ChallengeHandler:   challengeHandler,
		GradeHandler:       gradeHandler,
		LeaderboardHandler: leaderboardHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
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
