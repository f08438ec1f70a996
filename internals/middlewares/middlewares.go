package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/middlewares/logger"
)

// SetupMiddlewares urutan: recover → cors → logger → global limiter
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
