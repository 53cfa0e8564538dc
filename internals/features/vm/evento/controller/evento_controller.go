package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	expService "univm_backend/internals/features/academico/expediente/service"
	dto "univm_backend/internals/features/vm/evento/dto"
	model "univm_backend/internals/features/vm/evento/model"
	perModel "univm_backend/internals/features/vm/periodo/model"
	helper "univm_backend/internals/helpers"
)

type EventoController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Scope     *expService.EpScopeService
}

func NewEventoController(db *gorm.DB, scope *expService.EpScopeService) *EventoController {
	return &EventoController{
		DB:        db,
		Validator: validator.New(),
		Scope:     scope,
	}
}

func codigoEvento(userId uuid.UUID) string {
	us := strings.ReplaceAll(userId.String(), "-", "")[:6]
	return fmt.Sprintf("EVT-%s-%s", time.Now().Format("20060102150405"), us)
}

// gestionaTarget comprueba autoridad sobre el alcance declarado del evento.
func (ctl *EventoController) gestionaTarget(userId uuid.UUID, tipo string, targetId uuid.UUID) (bool, error) {
	switch tipo {
	case model.TargetEpSede:
		return ctl.Scope.UserManagesEpSede(userId, targetId)
	case model.TargetSede:
		return ctl.Scope.UserManagesSede(userId, targetId)
	case model.TargetFacultad:
		return ctl.Scope.UserManagesFacultad(userId, targetId)
	}
	return false, nil
}

// POST /eventos
func (ctl *EventoController) Create(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateEventoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	ok, err := ctl.gestionaTarget(userId, req.EventoTargetableType, req.EventoTargetableId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas el alcance indicado")
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fecha no válida")
	}

	var periodo perModel.PeriodoAcademicoModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&periodo, "periodo_id = ?", m.EventoPeriodoId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Periodo no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m.EventoFecha.Before(periodo.PeriodoFechaInicio) || m.EventoFecha.After(periodo.PeriodoFechaFin) {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "FECHA_FUERA_DE_PERIODO",
			"La fecha del evento cae fuera del periodo académico", fiber.Map{
				"rango": fiber.Map{
					"inicio": periodo.PeriodoFechaInicio.Format("2006-01-02"),
					"fin":    periodo.PeriodoFechaFin.Format("2006-01-02"),
				},
			})
	}

	m.EventoCodigo = codigoEvento(userId)
	m.EventoCreadoPor = &userId

	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Evento creado", m)
}

// PATCH /eventos/:id — editable solo mientras sigue planificado.
func (ctl *EventoController) Update(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}

	var req dto.UpdateEventoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.EventoModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "evento_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Evento no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ok, err := ctl.gestionaTarget(userId, m.EventoTargetableType, m.EventoTargetableId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas el alcance del evento")
	}

	if m.EventoEstado != model.EventoPlanificado {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "ESTADO_INVALIDO",
			"Solo un evento planificado puede editarse", fiber.Map{"estado": m.EventoEstado})
	}

	if err := req.ApplyTo(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fecha no válida")
	}
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Evento actualizado", m)
}

// GET /eventos
func (ctl *EventoController) Index(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, helper.DefaultOpts)
	q := ctl.DB.WithContext(c.Context()).Model(&model.EventoModel{})

	if s := strings.TrimSpace(c.Query("periodo_id")); s != "" {
		if pid, err := uuid.Parse(s); err == nil {
			q = q.Where("evento_periodo_id = ?", pid)
		}
	}
	if s := strings.TrimSpace(c.Query("estado")); s != "" && !strings.EqualFold(s, "TODOS") {
		q = q.Where("evento_estado = ?", strings.ToUpper(s))
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(evento_titulo) LIKE ? OR LOWER(evento_codigo) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var filas []model.EventoModel
	if err := q.Order("evento_fecha DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", filas, helper.BuildMeta(total, p))
}

// GET /eventos/:id
func (ctl *EventoController) Show(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}
	var m model.EventoModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "evento_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Evento no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", m)
}
