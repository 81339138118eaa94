package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	artworksmemory "github.com/galeria/marketplace-api/internal/domains/artworks/adapters/memory"
	ordersmemory "github.com/galeria/marketplace-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/galeria/marketplace-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/galeria/marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/galeria/marketplace-api/internal/domains/orders/application"
	ordersports "github.com/galeria/marketplace-api/internal/domains/orders/ports"
	usersmemory "github.com/galeria/marketplace-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/galeria/marketplace-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/galeria/marketplace-api/internal/domains/users/application"
	orderactivities "github.com/galeria/marketplace-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/galeria/marketplace-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/galeria/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/galeria/marketplace-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "galeria-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderService, cleanupRepo := buildOrderService(ctx, logger)
	defer cleanupRepo()
	decorated := ordersobs.New(
		orderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	orderActivities := orderactivities.NewActivities(decorated)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildOrderService wires the order service against postgres when available,
// falling back to in-memory adapters for local development.
func buildOrderService(ctx context.Context, logger *slog.Logger) (ordersports.Service, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		catalog := artworksmemory.NewRepository()
		userService := usersapp.NewService(usersmemory.NewRepository(), usersmemory.NewSessionStore())
		return ordersapp.NewService(ordersmemory.NewRepository(catalog), userService, nil), cleanup
	}
	logger.Info("worker order repository configured with postgres")
	userService := usersapp.NewService(userspostgres.NewRepository(db), nil)
	return ordersapp.NewService(orderspostgres.NewRepository(db), userService, nil), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
