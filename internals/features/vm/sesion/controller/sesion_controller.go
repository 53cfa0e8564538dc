package controller

import (
	"errors"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	expService "univm_backend/internals/features/academico/expediente/service"
	evModel "univm_backend/internals/features/vm/evento/model"
	perModel "univm_backend/internals/features/vm/periodo/model"
	prModel "univm_backend/internals/features/vm/proyecto/model"
	dto "univm_backend/internals/features/vm/sesion/dto"
	model "univm_backend/internals/features/vm/sesion/model"
	helper "univm_backend/internals/helpers"
)

type SesionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Scope     *expService.EpScopeService
}

func NewSesionController(db *gorm.DB, scope *expService.EpScopeService) *SesionController {
	return &SesionController{
		DB:        db,
		Validator: validator.New(),
		Scope:     scope,
	}
}

// POST /procesos/:id/sesiones — alta en lote.
// Todas las fechas deben caer dentro del periodo del proyecto; si alguna
// queda fuera se rechaza el lote completo indicando cuáles.
func (ctl *SesionController) CreateParaProceso(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	procesoId, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}

	var req dto.CreateSesionesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var proceso prModel.ProcesoModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&proceso, "proceso_id = ?", procesoId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Proceso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var proyecto prModel.ProyectoModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&proyecto, "proyecto_id = ?", proceso.ProcesoProyectoId).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ok, err := ctl.Scope.UserManagesEpSede(userId, proyecto.ProyectoEpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas esta EP-Sede")
	}

	var periodo perModel.PeriodoAcademicoModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&periodo, "periodo_id = ?", proyecto.ProyectoPeriodoId).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	filas := make([]*model.SesionModel, 0, len(req.Sesiones))
	fueraDeRango := []string{}
	for i := range req.Sesiones {
		m, err := req.Sesiones[i].ToModel(model.TagProceso, proceso.ProcesoId)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Fecha de sesión no válida: "+req.Sesiones[i].SesionFecha)
		}
		if m.SesionFecha.Before(periodo.PeriodoFechaInicio) || m.SesionFecha.After(periodo.PeriodoFechaFin) {
			fueraDeRango = append(fueraDeRango, m.SesionFecha.Format("2006-01-02"))
		}
		filas = append(filas, m)
	}
	if len(fueraDeRango) > 0 {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "FECHAS_FUERA_DE_PERIODO",
			"Hay sesiones fuera del rango del periodo académico", fiber.Map{
				"rango": fiber.Map{
					"inicio": periodo.PeriodoFechaInicio.Format("2006-01-02"),
					"fin":    periodo.PeriodoFechaFin.Format("2006-01-02"),
				},
				"fechas_fuera": fueraDeRango,
			})
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		for _, m := range filas {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Sesiones creadas", filas)
}

// GET /procesos/:id/sesiones
func (ctl *SesionController) IndexParaProceso(c *fiber.Ctx) error {
	procesoId, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}
	var filas []model.SesionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("sesion_sessionable_type IN ?", model.AliasesProceso).
		Where("sesion_sessionable_id = ?", procesoId).
		Order("sesion_fecha ASC, sesion_hora_inicio ASC").
		Find(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", filas)
}

// POST /eventos/:id/sesiones — misma validación de rango, contra el
// periodo del propio evento.
func (ctl *SesionController) CreateParaEvento(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventoId, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}

	var req dto.CreateSesionesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var evento evModel.EventoModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&evento, "evento_id = ?", eventoId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Evento no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// autoridad sobre el alcance del evento
	var autorizado bool
	switch evento.EventoTargetableType {
	case evModel.TargetEpSede:
		autorizado, err = ctl.Scope.UserManagesEpSede(userId, evento.EventoTargetableId)
	case evModel.TargetSede:
		autorizado, err = ctl.Scope.UserManagesSede(userId, evento.EventoTargetableId)
	case evModel.TargetFacultad:
		autorizado, err = ctl.Scope.UserManagesFacultad(userId, evento.EventoTargetableId)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !autorizado {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas el alcance del evento")
	}

	var periodo perModel.PeriodoAcademicoModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&periodo, "periodo_id = ?", evento.EventoPeriodoId).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	filas := make([]*model.SesionModel, 0, len(req.Sesiones))
	fueraDeRango := []string{}
	for i := range req.Sesiones {
		m, err := req.Sesiones[i].ToModel(model.TagEvento, evento.EventoId)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Fecha de sesión no válida: "+req.Sesiones[i].SesionFecha)
		}
		if m.SesionFecha.Before(periodo.PeriodoFechaInicio) || m.SesionFecha.After(periodo.PeriodoFechaFin) {
			fueraDeRango = append(fueraDeRango, m.SesionFecha.Format("2006-01-02"))
		}
		filas = append(filas, m)
	}
	if len(fueraDeRango) > 0 {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "FECHAS_FUERA_DE_PERIODO",
			"Hay sesiones fuera del rango del periodo académico", fiber.Map{
				"rango": fiber.Map{
					"inicio": periodo.PeriodoFechaInicio.Format("2006-01-02"),
					"fin":    periodo.PeriodoFechaFin.Format("2006-01-02"),
				},
				"fechas_fuera": fueraDeRango,
			})
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		for _, m := range filas {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Sesiones creadas", filas)
}
