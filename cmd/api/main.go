package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/chefmate/backend/internal/adapters/artifacts"
	"github.com/zatekoja/chefmate/backend/internal/adapters/cache"
	"github.com/zatekoja/chefmate/backend/internal/adapters/dataset"
	"github.com/zatekoja/chefmate/backend/internal/adapters/providers/chat"
	"github.com/zatekoja/chefmate/backend/internal/adapters/search"
	"github.com/zatekoja/chefmate/backend/internal/api/handlers"
	"github.com/zatekoja/chefmate/backend/internal/api/middleware"
	"github.com/zatekoja/chefmate/backend/internal/api/routes"
	"github.com/zatekoja/chefmate/backend/internal/application/services"
	"github.com/zatekoja/chefmate/backend/internal/domain/providers"
	"github.com/zatekoja/chefmate/backend/internal/domain/repositories"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/observability"
	"github.com/zatekoja/chefmate/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Dataset and model artifacts are loaded once; both are required
	var source repositories.DatasetSource
	switch cfg.Dataset.Source {
	case "postgres":
		pgClient, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		source = dataset.NewPostgresSource(pgClient)
	default:
		source = dataset.NewCSVSource(cfg.Dataset.Path)
	}

	ds, err := source.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.Dataset.Source).Msg("Failed to load dataset")
	}

	modelArtifacts, err := artifacts.NewFileLoader(&cfg.Artifacts).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load model artifacts")
	}

	// Redis is optional; the application works without caching
	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient, "chefmate:")
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis cache enabled")
		}
	}

	var searchRepo repositories.RestaurantSearchRepository
	if cfg.Typesense.Enabled {
		typesenseClient, err := typesense.NewClient(ctx, &cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, suggestions use the in-memory catalog")
		} else {
			adapter := search.NewTypesenseAdapter(typesenseClient)
			if err := adapter.InitSchema(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to init Typesense schema")
			}
			searchRepo = adapter
		}
	}

	// Services
	recommendationService := services.NewRecommendationService(ds)
	catalogService := services.NewCatalogService(ds, searchRepo)
	mapService := services.NewMapService(ds)
	chatService := services.NewChatService(chat.NewGeminiProvider(&cfg.Gemini), metrics)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(routes.Handlers{
		Recommendation: handlers.NewRecommendationHandler(recommendationService, catalogService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Map:            handlers.NewMapHandler(mapService),
		StaticMap:      handlers.NewStaticMapHandler(mapService, cfg.Maps.APIKey, cacheProvider),
		Chat:           handlers.NewChatHandler(chatService),
		Artifact:       handlers.NewArtifactHandler(modelArtifacts),
	}, cacheMiddleware, metrics, routes.Options{
		ChatRateLimit:  cfg.RateLimit.ChatRequestsPerMinute,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Int("restaurants", ds.Len()).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
