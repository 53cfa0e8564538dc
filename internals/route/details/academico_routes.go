package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	expController "univm_backend/internals/features/academico/expediente/controller"
	expService "univm_backend/internals/features/academico/expediente/service"
	instController "univm_backend/internals/features/academico/institucion/controller"
)

// AcademicoRoutes monta la jerarquía institucional y los expedientes.
// Todo el grupo exige sesión; la autorización fina vive en cada handler.
func AcademicoRoutes(api fiber.Router, db *gorm.DB, scope *expService.EpScopeService) {
	inst := instController.NewInstitucionController(db)
	exp := expController.NewExpedienteController(db)

	api.Get("/universidad", inst.ShowUniversidad)
	api.Put("/universidad", inst.UpdateUniversidad)

	api.Get("/facultades", inst.ListFacultades)
	api.Post("/facultades", inst.CreateFacultad)

	api.Post("/escuelas", inst.CreateEscuela)

	api.Get("/sedes", inst.ListSedes)
	api.Post("/sedes", inst.CreateSede)

	api.Post("/ep-sedes", inst.CreateEpSede)
	api.Delete("/ep-sedes/:id", inst.DeleteEpSede)

	api.Post("/expedientes", exp.Create)
	api.Post("/ep-sedes/responsables/coordinador", exp.SetCoordinador)
	api.Post("/ep-sedes/responsables/encargado", exp.SetEncargado)
}
