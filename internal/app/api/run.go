package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	galeriaserver "github.com/galeria/marketplace-api/server"

	platformkafka "github.com/galeria/marketplace-api/internal/platform/kafka"
	platformmigrations "github.com/galeria/marketplace-api/internal/platform/migrations"
	platformobservability "github.com/galeria/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/galeria/marketplace-api/internal/platform/postgres"

	usersmemory "github.com/galeria/marketplace-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/galeria/marketplace-api/internal/domains/users/adapters/persistence/postgres"
	usersredis "github.com/galeria/marketplace-api/internal/domains/users/adapters/redis"
	usersapp "github.com/galeria/marketplace-api/internal/domains/users/application"
	usersports "github.com/galeria/marketplace-api/internal/domains/users/ports"

	artworksmemory "github.com/galeria/marketplace-api/internal/domains/artworks/adapters/memory"
	artworkspostgres "github.com/galeria/marketplace-api/internal/domains/artworks/adapters/persistence/postgres"
	artworksapp "github.com/galeria/marketplace-api/internal/domains/artworks/application"

	orderskafka "github.com/galeria/marketplace-api/internal/domains/orders/adapters/events/kafka"
	ordersmemory "github.com/galeria/marketplace-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/galeria/marketplace-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/galeria/marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/galeria/marketplace-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/galeria/marketplace-api/internal/domains/orders/application"
	ordersports "github.com/galeria/marketplace-api/internal/domains/orders/ports"
)

const serviceName = "galeria-api"

// Run boots the marketplace HTTP API with observability, repositories,
// events, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := buildSessionStore(ctx, cfg, db, sessionTTL, logger)
	var userService *usersapp.Service
	var artworkService *artworksapp.Service
	var coreOrderService *ordersapp.Service

	events, cleanupEvents := buildEventPublisher(ctx, cfg, logger)
	defer cleanupEvents()

	if db != nil {
		userService = usersapp.NewService(userspostgres.NewRepository(db), sessions)
		artworkService = artworksapp.NewService(artworkspostgres.NewRepository(db), userService)
		coreOrderService = ordersapp.NewService(orderspostgres.NewRepository(db), userService, events)
	} else {
		catalog := artworksmemory.NewRepository()
		userService = usersapp.NewService(usersmemory.NewRepository(), sessions)
		artworkService = artworksapp.NewService(catalog, userService)
		coreOrderService = ordersapp.NewService(ordersmemory.NewRepository(catalog), userService, events)
	}

	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline order placement", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := galeriaserver.ApiHandleFunctions{
		UsersAPI:    galeriaserver.NewUsersAPI(userService),
		ArtworksAPI: galeriaserver.NewArtworksAPI(artworkService),
		OrdersAPI:   galeriaserver.NewOrdersAPI(orderService, orderWorkflows),
	}

	router := galeriaserver.NewRouter(handlers, otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("galeria API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("galeria API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildSessionStore prefers Redis, then Postgres, then process memory.
func buildSessionStore(ctx context.Context, cfg Config, db *gorm.DB, ttl time.Duration, logger *slog.Logger) usersports.SessionStore {
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("failed to connect to redis, falling back", slog.String("error", err.Error()))
			_ = redisClient.Close()
		} else {
			logger.Info("session store configured with redis")
			return usersredis.NewSessionStore(redisClient, ttl)
		}
	}
	if db != nil {
		logger.Info("session store configured with postgres")
		return userspostgres.NewSessionStore(db, ttl)
	}
	logger.Warn("session store falling back to process memory")
	return usersmemory.NewSessionStore()
}

// buildEventPublisher wires the Kafka producer when brokers are configured.
// Publication is best effort; without brokers events are discarded.
func buildEventPublisher(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
		return ordersports.NoopEvents{}, func() {}
	}
	producer := platformkafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, 256, logger)
	producer.Start(ctx)
	logger.Info("order events configured with kafka", slog.String("topic", cfg.KafkaTopic))
	return orderskafka.NewPublisher(producer, logger), func() {
		producer.Close()
		producer.WaitClosed()
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
