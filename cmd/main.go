package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"movie-discovery-llm-recommender/internal/config"
	"movie-discovery-llm-recommender/internal/database"
	"movie-discovery-llm-recommender/internal/handler"
	"movie-discovery-llm-recommender/internal/llm"
	"movie-discovery-llm-recommender/internal/middleware"
	"movie-discovery-llm-recommender/internal/prompt"
	"movie-discovery-llm-recommender/internal/repository"
	"movie-discovery-llm-recommender/internal/service"
	"movie-discovery-llm-recommender/internal/tmdb"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache and rate limiting", "error", err)
	} else {
		defer rdb.Close()
	}

	// External collaborators
	catalog := tmdb.NewCatalog(
		tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, cfg.TMDB.Region),
		rdb, cfg.TMDB,
	)
	generator, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		slog.Error("failed to create text generator", "error", err)
		os.Exit(1)
	}

	// Initialize layers
	svc := service.NewRecommendationService(service.Stores{
		Profiles:        repository.NewUserRepository(db),
		History:         repository.NewHistoryRepository(db),
		Recommendations: repository.NewRecommendationRepository(db),
		Catalog:         repository.NewCatalogRepository(db),
		Activity:        repository.NewActivityRepository(db),
	}, generator, catalog, prompt.NewBuilder(nil))
	h := handler.NewRecommendationHandler(svc)
	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit)

	// Load API document
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "recommender",
		ServerHeader: "recommender",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger
	if swaggerYAML != nil {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// Routes
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	h.Register(app, limiter.Handler())

	go func() {
		slog.Info("recommender starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down recommender")
	_ = app.Shutdown()
}
