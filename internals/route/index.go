// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	expService "univm_backend/internals/features/academico/expediente/service"
	authMiddleware "univm_backend/internals/middlewares/auth"
	routeDetails "univm_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// el resolver de columna user_id/usuario_id se construye una sola vez
	scope := expService.NewEpScopeService(db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	public.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":     true,
			"uptime": time.Since(startTime).String(),
		})
	})

	// ===================== PRIVATE =====================
	log.Println("[INFO] Setting up PRIVATE group (JWT)...")
	api := app.Group("/api/v1", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Setting up AcademicoRoutes...")
	routeDetails.AcademicoRoutes(api, db, scope)

	log.Println("[INFO] Setting up VmRoutes...")
	routeDetails.VmRoutes(api, db, scope)
}
