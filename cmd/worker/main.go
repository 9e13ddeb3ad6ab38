package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/config"
	natsDispatch "github.com/infra-status-service/internal/infrastructure/nats"
	"github.com/infra-status-service/internal/observability"
	"github.com/infra-status-service/internal/pkg/logger"
	"github.com/infra-status-service/internal/repository/cache"
	"github.com/infra-status-service/internal/repository/postgres"
	redisRepo "github.com/infra-status-service/internal/repository/redis"
	"github.com/infra-status-service/internal/usecase"
	"github.com/infra-status-service/internal/worker"
	"github.com/infra-status-service/internal/worker/notification"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "infra-status-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting notification fan-out worker",
		zap.String("stream", cfg.Notification.Stream),
		zap.String("consumer_group", cfg.Notification.ConsumerGroup),
		zap.Int("batch_size", cfg.Notification.BatchSize),
		zap.Float64("rate_per_second", cfg.Notification.RatePerSecond))

	otel.SetTextMapPropagator(propagation.TraceContext{})

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Connect to NATS
	nc, err := nats.Connect(cfg.NATS.URL,
		nats.Name("infra-status-worker"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		log.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer nc.Drain()

	// 6. Initialize repositories and use cases
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	userDirectory := postgres.NewUserDirectory(db)
	dispatcher := natsDispatch.NewDispatcher(
		nc,
		cfg.NATS.SubjectPrefix,
		cfg.Notification.RatePerSecond,
		cfg.Notification.Burst,
		log,
	)

	notificationUC := usecase.NewNotificationUseCase(
		userDirectory,
		dispatcher,
		cfg.Notification.BatchSize,
		observability.NewMetrics(),
		log,
	)

	// 7. Initialize workers
	fanOutWorker := notification.NewFanOutWorker(
		streamRepo,
		notificationUC,
		cfg.Notification.Stream,
		cfg.Notification.ConsumerGroup,
		cfg.Notification.ClaimMinIdle,
		log,
	)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(fanOutWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 8. Graceful shutdown: текущая рассылка дорабатывает, затем контекст отменяется
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("Received shutdown signal")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := workerManager.Stop(stopCtx); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
