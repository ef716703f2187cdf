package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/nearby-service/internal/config"
	"github.com/nearby-service/internal/delivery/http/handler"
	"github.com/nearby-service/internal/delivery/http/middleware"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	nearbyHandler *handler.NearbyHandler
	statsHandler  *handler.StatsHandler
	healthHandler *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	nearbyHandler *handler.NearbyHandler,
	statsHandler *handler.StatsHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Nearby Service",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
		ErrorHandler:          customErrorHandler(logger),
		DisableStartupMessage: cfg.Server.Env == "production",
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		nearbyHandler: nearbyHandler,
		statsHandler:  statsHandler,
		healthHandler: healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber-приложение, используется в тестах через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)
	api.Get("/stats", s.statsHandler.GetStatistics)

	// Nearby routes: kind = fuel | parking
	api.Get("/:kind/nearby", s.nearbyHandler.Nearby)
	api.Get("/:kind/search", s.nearbyHandler.Search)
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

// customErrorHandler - ошибки, не обработанные хендлерами: 404 маршрута, паники, AppError
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			code := errors.CodeInternalServer
			if fiberErr.Code == fiber.StatusNotFound {
				code = "NOT_FOUND"
			} else if fiberErr.Code < fiber.StatusInternalServerError {
				code = errors.CodeInvalidRequest
			}
			return c.Status(fiberErr.Code).JSON(utils.ErrorResponse{
				Error: errors.New(code, fiberErr.Message, fiberErr.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
