package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"campusfee_backend/internals/configs"
	requestLogger "campusfee_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global: recover, log akses, CORS, rate limit.
func SetupMiddlewares(app *fiber.App, cfg configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(requestLogger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.AllowedOrigins()))
	app.Use(GlobalRateLimiter())
}
