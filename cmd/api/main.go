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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-api/internal/config"
	"github.com/prompt-arena/arena-api/internal/database"
	"github.com/prompt-arena/arena-api/internal/handler"
	"github.com/prompt-arena/arena-api/internal/middleware"
	"github.com/prompt-arena/arena-api/internal/models"
	"github.com/prompt-arena/arena-api/internal/repository"
	"github.com/prompt-arena/arena-api/internal/router"
	"github.com/prompt-arena/arena-api/internal/service"
	"github.com/prompt-arena/arena-api/pkg/generation"
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

	if err := db.AutoMigrate(&models.Team{}, &models.Challenge{}, &models.Submission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis backs the leaderboard cache only; the API degrades gracefully
	// without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, leaderboard caching disabled")
	}

	var events *nats.Conn
	if cfg.NATSURL != "" {
		events, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer events.Drain()
	} else {
		logger.Warn().Msg("nats url not configured, scored events disabled")
	}

	generator, err := generation.NewOpenAIGenerator(generation.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.GenerationTokens,
		Temperature: cfg.GenerationTemp,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("failed to create generation client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	teamRepo := repository.NewTeamRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	teamService := service.NewTeamService(teamRepo, validate, logger, service.TeamConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	})
	scoringService := service.NewScoringService(submissionRepo, teamRepo, challengeRepo, generator, events, validate, logger, service.ScoringConfig{
		Temperature: cfg.GenerationTemp,
		MaxTokens:   cfg.GenerationTokens,
	})
	challengeService, err := service.NewChallengeService(challengeRepo, validate, logger)
	if err != nil {
		log.Fatalf("failed to create challenge service: %v", err)
	}
	progressService := service.NewProgressService(submissionRepo, teamRepo, logger)
	leaderboardService := service.NewLeaderboardService(teamRepo, redisClient, cfg.LeaderboardTTL, logger)

	teamHandler := handler.NewTeamHandler(teamService, logger)
	submissionHandler := handler.NewSubmissionHandler(scoringService, logger)
	challengeHandler := handler.NewChallengeHandler(challengeService, logger)
	progressHandler := handler.NewProgressHandler(progressService, logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		TeamHandler:        teamHandler,
		SubmissionHandler:  submissionHandler,
		ChallengeHandler:   challengeHandler,
		ProgressHandler:    progressHandler,
		LeaderboardHandler: leaderboardHandler,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
		SubmitRateLimit:    middleware.RateLimit("submit", cfg.SubmitRatePerMin, time.Minute),
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
