package main

// @title Infrastructure Status Service API
// @version 1.0.0
// @description Сервис статуса коммунальных услуг и инженерных сетей города.
// @description
// @description Основные возможности:
// @description - Сообщения жителей о наличии электричества и воды
// @description - Heatmap районов по сообщениям за день
// @description - Уведомления соседям при восстановлении услуги
// @description - Редактирование узлов и линий сетей сотрудниками департаментов
// @description - Слой отображения GeoJSON для карты

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	_ "github.com/infra-status-service/docs"
	"github.com/infra-status-service/internal/config"
	httpDelivery "github.com/infra-status-service/internal/delivery/http"
	"github.com/infra-status-service/internal/delivery/http/handler"
	"github.com/infra-status-service/internal/delivery/http/middleware"
	"github.com/infra-status-service/internal/observability"
	"github.com/infra-status-service/internal/pkg/logger"
	"github.com/infra-status-service/internal/repository/cache"
	"github.com/infra-status-service/internal/repository/postgres"
	redisRepo "github.com/infra-status-service/internal/repository/redis"
	"github.com/infra-status-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "infra-status-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Infrastructure Status Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("timezone", cfg.Server.Timezone),
		zap.Duration("trend_window", cfg.Trend.Window),
		zap.Int64("trend_threshold", cfg.Trend.Threshold),
	)

	policy, err := config.LoadNetworkPolicy(cfg.Policy.File)
	if err != nil {
		log.Fatal("Failed to load network policy", zap.Error(err))
	}

	publicKey, err := middleware.LoadPublicKey(cfg.Auth.PublicKeyPath)
	if err != nil {
		log.Fatal("Failed to load JWT public key", zap.Error(err))
	}

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize Repositories
	serviceLogRepo := postgres.NewServiceLogRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	assetRepo := postgres.NewAssetRepository(db)
	zoneRepo := postgres.NewZoneRepository(db)
	problemReportRepo := postgres.NewProblemReportRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	trendCounter := cache.NewTrendCounter(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	notificationPublisher := redisRepo.NewNotificationPublisher(streamRepo, cfg.Notification.Stream)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	clock := clockwork.NewRealClock()
	location := cfg.Location()
	metrics := observability.NewMetrics()
	permissions := usecase.NewPermissionResolver(departmentRepo, policy)

	trendDetector := usecase.NewTrendDetector(
		trendCounter,
		notificationPublisher,
		cfg.Trend.Window,
		cfg.Trend.Threshold,
		clock,
		metrics,
		log,
	)

	ingestUC := usecase.NewIngestUseCase(
		serviceLogRepo,
		cacheRepo,
		usecase.NewDepartmentResolver(departmentRepo, log),
		clock,
		location,
		metrics,
		log,
		trendDetector,
	)

	heatmapUC := usecase.NewHeatmapUseCase(
		serviceLogRepo,
		zoneRepo,
		cacheRepo,
		cfg.Cache.HeatmapCacheTTL,
		clock,
		location,
		metrics,
		log,
	)

	assetUC := usecase.NewAssetUseCase(assetRepo, permissions, log)
	zoneUC := usecase.NewZoneUseCase(zoneRepo, permissions, log)
	exportUC := usecase.NewGeoExportUseCase(assetRepo, zoneRepo, heatmapUC, clock, location, log)
	problemReportUC := usecase.NewProblemReportUseCase(problemReportRepo, zoneRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{
		"postgres": db,
		"redis":    redisClient,
	}, log)
	serviceLogHandler := handler.NewServiceLogHandler(ingestUC, heatmapUC, log)
	networkHandler := handler.NewNetworkHandler(assetUC, exportUC, log)
	zoneHandler := handler.NewZoneHandler(zoneUC, log)
	problemReportHandler := handler.NewProblemReportHandler(problemReportUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		middleware.NewAuth(publicKey, log),
		healthHandler,
		serviceLogHandler,
		networkHandler,
		zoneHandler,
		problemReportHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
