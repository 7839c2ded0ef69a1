package main

import (
	"context"
	_ "github.com/joho/godotenv/autoload"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/dishcovery/api/internal/api"
	"github.com/dishcovery/api/internal/config"
	"github.com/dishcovery/api/internal/logger"
	"github.com/dishcovery/api/internal/metrics"
	"github.com/dishcovery/api/internal/middleware"
	"github.com/dishcovery/api/internal/services/models"
	"github.com/dishcovery/api/internal/services/recipe"
	"github.com/dishcovery/api/internal/telemetry"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Initialize logger with OTel support
	logger := logger.New(cfg.Env)
	slog.SetDefault(logger) // Set as default so slog.Info() uses our handler

	registry := recipe.NewRegistry(cfg)
	generator := recipe.NewService(cfg, registry)
	keyClient := models.NewClient()

	// API handlers
	apiServer := api.NewServer(cfg, registry, generator, keyClient)

	// Router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recover)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(cfg.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(cfg.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.NotFound(apiServer.HandleNotFound)
	r.Get("/", apiServer.HandleRoot)
	r.Get("/api/providers", apiServer.HandleListProviders)

	// Generation routes; auth is a no-op unless AUTH_JWT_SECRET is set
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg))
		r.Post("/api/generate-recipe", apiServer.HandleGenerateRecipe)
		r.Post("/api/validate-key", apiServer.HandleValidateKey)
	})

	slog.Info("Starting server", "port", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
