package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nimbuserp/fx_backend/internal/adapters/cache/memory"
	"github.com/nimbuserp/fx_backend/internal/adapters/cache/rediscache"
	"github.com/nimbuserp/fx_backend/internal/adapters/database/pgsql"
	"github.com/nimbuserp/fx_backend/internal/adapters/events"
	"github.com/nimbuserp/fx_backend/internal/adapters/format"
	"github.com/nimbuserp/fx_backend/internal/adapters/providers"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/ports"
	"github.com/nimbuserp/fx_backend/internal/core/services"
	"github.com/nimbuserp/fx_backend/internal/handlers"
	"github.com/nimbuserp/fx_backend/internal/middleware"
	"github.com/nimbuserp/fx_backend/internal/platform/config"
	"github.com/nimbuserp/fx_backend/internal/pubsub"
	"github.com/nimbuserp/fx_backend/internal/utils"
	"github.com/nimbuserp/fx_backend/pkg/database"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title FX Backend API
// @version 1.0
// @description Currency conversion and exchange-rate caching service.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Rate cache and preference store: Redis when configured, otherwise the
	// in-process store.
	var (
		rateCache ports.RateCache
		prefStore ports.PreferenceStore
	)
	if cfg.RedisURL != "" {
		client, err := rediscache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		store := rediscache.NewStore(client, cfg.RateRetention)
		rateCache, prefStore = store, store
		logger.Info("Redis cache connected")
	} else {
		store := memory.NewStore()
		rateCache, prefStore = store, store
		logger.Warn("REDIS_URL not set, using in-memory cache")
	}

	// Rate history persistence is optional; without a database the history
	// endpoint reports not found.
	var rateOpts []services.RateServiceOption
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		rateOpts = append(rateOpts, services.WithRateHistory(pgsql.NewPgxRateHistoryRepository(dbPool)))
	}

	// Event publishing is optional; without brokers nothing is announced.
	var eventPublisher ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			logger.Error("Failed to create Kafka producer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer producer.Close()
		eventPublisher = producer
		rateOpts = append(rateOpts, services.WithRatePublisher(producer))
		logger.Info("Kafka producer connected", slog.String("topic", cfg.KafkaTopic))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	catalog := domain.DefaultCatalog()
	broker := pubsub.NewBroker()
	defer broker.Close()

	currencyService := services.NewCurrencyService(catalog, format.NewLocaleFormatter())
	rateService := services.NewRateService(
		catalog,
		rateCache,
		providers.NewExchangeRateHostClient(cfg.PrimaryRateAPIURL),
		providers.NewFrankfurterClient(cfg.SecondaryRateAPIURL),
		logger,
		cfg.RateStaleness,
		domain.IntermediaryCurrency,
		domain.ApproxHomePerIntermediary,
		rateOpts...,
	)
	preferenceService := services.NewPreferenceService(catalog, prefStore, broker, eventPublisher, logger)
	sessionFactory := services.NewSessionFactory(currencyService, rateService, preferenceService, broker, services.SessionConfig{
		Staleness: cfg.RateStaleness,
		Retention: cfg.RateRetention,
		Retries:   cfg.RateFetchRetries,
	})
	serviceContainer := services.BuildServices(currencyService, rateService, preferenceService, sessionFactory)

	var rateLimiter *limiter.Limiter
	if cfg.RateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
		if err != nil {
			logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
			os.Exit(1)
		}
		rateLimiter = limiter.New(limitermemory.NewStore(), rate)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter, posthogClient)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
