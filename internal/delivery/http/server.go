package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/config"
	"github.com/infra-status-service/internal/delivery/http/handler"
	"github.com/infra-status-service/internal/delivery/http/middleware"
	"github.com/infra-status-service/internal/pkg/errors"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger
	auth   *middleware.Auth

	// Handlers
	healthHandler        *handler.HealthHandler
	serviceLogHandler    *handler.ServiceLogHandler
	networkHandler       *handler.NetworkHandler
	zoneHandler          *handler.ZoneHandler
	problemReportHandler *handler.ProblemReportHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	auth *middleware.Auth,
	healthHandler *handler.HealthHandler,
	serviceLogHandler *handler.ServiceLogHandler,
	networkHandler *handler.NetworkHandler,
	zoneHandler *handler.ZoneHandler,
	problemReportHandler *handler.ProblemReportHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Infrastructure Status Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                  app,
		config:               cfg,
		logger:               logger,
		auth:                 auth,
		healthHandler:        healthHandler,
		serviceLogHandler:    serviceLogHandler,
		networkHandler:       networkHandler,
		zoneHandler:          zoneHandler,
		problemReportHandler: problemReportHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSAllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")
	api.Get("/health", s.healthHandler.Health)

	// Сообщения жителей
	api.Post("/service-logs", s.auth.Optional(), s.serviceLogHandler.Submit)
	api.Get("/service-logs/heatmap", s.serviceLogHandler.Heatmap)

	// Сети: чтение слоя открыто, изменения только для сотрудников
	network := api.Group("/network")
	network.Get("/layers", s.networkHandler.DisplayLayer)
	network.Get("/assets", s.auth.Required(), s.networkHandler.ListAssets)
	network.Post("/nodes", s.auth.Required(), s.networkHandler.CreateNode)
	network.Patch("/nodes/:id", s.auth.Required(), s.networkHandler.UpdateNode)
	network.Delete("/nodes/:id", s.auth.Required(), s.networkHandler.DeleteNode)
	network.Post("/lines", s.auth.Required(), s.networkHandler.CreateLine)
	network.Patch("/lines/:id", s.auth.Required(), s.networkHandler.UpdateLine)
	network.Delete("/lines/:id", s.auth.Required(), s.networkHandler.DeleteLine)

	// Зоны
	api.Get("/zones", s.zoneHandler.List)
	api.Post("/zones", s.auth.Required(), s.zoneHandler.Create)
	api.Put("/zones/:id", s.auth.Required(), s.zoneHandler.Update)
	api.Delete("/zones/:id", s.auth.Required(), s.zoneHandler.Delete)

	// Точечные сообщения о проблемах
	api.Post("/problem-reports", s.auth.Optional(), s.problemReportHandler.Create)
	api.Get("/problem-reports", s.problemReportHandler.List)
}

// App - fiber приложение, для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки вне хендлеров (404 маршрута, 405, паники) в общем конверте
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appCode := errors.ErrInternalServer.Code

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				appCode = "ROUTE_NOT_FOUND"
			} else if code < fiber.StatusInternalServerError {
				appCode = errors.ErrInvalidRequest.Code
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    appCode,
				"message": err.Error(),
			},
		})
	}
}
