package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	expService "univm_backend/internals/features/academico/expediente/service"
	asController "univm_backend/internals/features/vm/asistencia/controller"
	evController "univm_backend/internals/features/vm/evento/controller"
	insController "univm_backend/internals/features/vm/inscripcion/controller"
	perController "univm_backend/internals/features/vm/periodo/controller"
	prController "univm_backend/internals/features/vm/proyecto/controller"
	sesController "univm_backend/internals/features/vm/sesion/controller"
	"univm_backend/internals/middlewares"
)

// VmRoutes monta el módulo de horas de servicio: proyectos, eventos,
// sesiones, asistencia e inscripciones.
func VmRoutes(api fiber.Router, db *gorm.DB, scope *expService.EpScopeService) {
	periodos := perController.NewPeriodoController(db)
	proyectos := prController.NewProyectoController(db, scope)
	alumno := prController.NewProyectoAlumnoController(db, scope)
	eventos := evController.NewEventoController(db, scope)
	sesiones := sesController.NewSesionController(db, scope)
	asistencias := asController.NewAsistenciaController(db, scope)
	inscripciones := insController.NewInscripcionController(db, scope)

	// periodos académicos
	api.Get("/periodos", periodos.Index)
	api.Get("/periodos/vigente", periodos.Vigente)
	api.Post("/periodos", periodos.Create)

	// proyectos (staff)
	api.Get("/proyectos", proyectos.Index)
	api.Get("/proyectos/niveles-disponibles", proyectos.NivelesDisponibles)
	api.Post("/proyectos", proyectos.Create)
	api.Get("/proyectos/:id", proyectos.Show)
	api.Post("/proyectos/:id/publicar", proyectos.Publicar)
	api.Post("/proyectos/:id/procesos", proyectos.CreateProceso)

	// panel e inscripción del alumno
	api.Get("/alumno/proyectos", alumno.Index)
	api.Post("/proyectos/:id/inscribirse", inscripciones.Inscribir)
	api.Get("/proyectos/:id/inscritos", inscripciones.ListarInscritos)
	api.Get("/proyectos/:id/candidatos", inscripciones.ListarCandidatos)

	// eventos
	api.Get("/eventos", eventos.Index)
	api.Post("/eventos", eventos.Create)
	api.Get("/eventos/:id", eventos.Show)
	api.Patch("/eventos/:id", eventos.Update)
	api.Post("/eventos/:id/sesiones", sesiones.CreateParaEvento)

	// sesiones
	api.Get("/procesos/:id/sesiones", sesiones.IndexParaProceso)
	api.Post("/procesos/:id/sesiones", sesiones.CreateParaProceso)

	// asistencia
	api.Post("/sesiones/:id/tokens/qr", asistencias.GenerarQr)
	api.Post("/sesiones/:id/tokens/manual", asistencias.ActivarManual)
	api.Post("/sesiones/:id/check-in/qr", middlewares.CheckInRateLimiter(), asistencias.CheckInQr)
	api.Post("/sesiones/:id/check-in/manual", asistencias.CheckInManual)
	api.Post("/sesiones/:id/check-in/justificada", asistencias.CheckInJustificada)
	api.Get("/sesiones/:id/participantes", asistencias.Participantes)
	api.Get("/sesiones/:id/asistencias", asistencias.ListarAsistencias)
	api.Get("/sesiones/:id/reporte", asistencias.Reporte)
	api.Post("/sesiones/:id/validar", asistencias.Validar)
}
