package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/streamhive/streamhive-backend/internal/config"
	"github.com/streamhive/streamhive-backend/internal/handlers"
	"github.com/streamhive/streamhive-backend/internal/metrics"
	"github.com/streamhive/streamhive-backend/internal/middleware"
	"github.com/streamhive/streamhive-backend/internal/routes"
	"github.com/streamhive/streamhive-backend/internal/utils"
)

// New initializes the Fiber application with config, middlewares, and routes.
func New(
	cfg *config.Config,
	users *handlers.UserHandler,
	videos *handlers.VideoHandler,
	subscriptions *handlers.SubscriptionHandler,
	jwtMgr *utils.JWTManager,
	logger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    256 * 1024 * 1024, // video uploads
	})

	app.Use(cors.New())
	app.Use(zapLoggerMiddleware(logger))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.PerMinute, logger)
	routes.Setup(app, users, videos, subscriptions, jwtMgr, limiter)

	return app
}

// zapLoggerMiddleware logs requests and feeds the Prometheus request counter.
func zapLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)
		status := c.Response().StatusCode()

		metrics.HTTPRequests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}

		if err != nil {
			logger.Error("HTTP Request Error", append(fields, zap.Error(err))...)
			return err
		}

		logger.Info("HTTP Request", fields...)
		return nil
	}
}
