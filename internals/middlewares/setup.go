package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"univm_backend/internals/middlewares/logger"
)

// SetupMiddlewares registra el stack global de middlewares.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
