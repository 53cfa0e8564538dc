package controller

import (
	"errors"
	"log"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "univm_backend/internals/features/academico/expediente/dto"
	model "univm_backend/internals/features/academico/expediente/model"
	helper "univm_backend/internals/helpers"
)

/* ==============================
   Controller
============================== */

type ExpedienteController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewExpedienteController(db *gorm.DB) *ExpedienteController {
	return &ExpedienteController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* ==============================
   Expediente
============================== */

// POST /expedientes
// Idempotente por (user, ep_sede): si ya existe se reactiva y se
// completan los campos enviados en lugar de duplicar.
func (ctl *ExpedienteController) Create(c *fiber.Ctx) error {
	var req dto.CreateExpedienteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var existente model.ExpedienteAcademicoModel
	err := ctl.DB.WithContext(c.Context()).
		Where("expediente_user_id = ? AND expediente_ep_sede_id = ?",
			req.ExpedienteUserId, req.ExpedienteEpSedeId).
		First(&existente).Error

	switch {
	case err == nil:
		existente.ExpedienteEstado = model.EstadoActivo
		if req.ExpedienteCodigoEstudiante != nil {
			existente.ExpedienteCodigoEstudiante = req.ExpedienteCodigoEstudiante
		}
		if req.ExpedienteGrupo != nil {
			existente.ExpedienteGrupo = req.ExpedienteGrupo
		}
		if req.ExpedienteCorreoInstitucional != nil {
			existente.ExpedienteCorreoInstitucional = req.ExpedienteCorreoInstitucional
		}
		if req.ExpedienteRol != nil {
			existente.ExpedienteRol = *req.ExpedienteRol
		}
		if err := ctl.DB.WithContext(c.Context()).Save(&existente).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		return helper.JsonOK(c, "Expediente reactivado", existente)

	case errors.Is(err, gorm.ErrRecordNotFound):
		m := req.ToModel()
		hoy := time.Now()
		m.ExpedienteVigenteDesde = &hoy
		if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		return helper.JsonCreated(c, "Expediente creado", m)

	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

/* ==============================
   Responsables de EP-Sede
============================== */

// POST /ep-sedes/responsables/coordinador
func (ctl *ExpedienteController) SetCoordinador(c *fiber.Ctx) error {
	return ctl.asignarResponsable(c, model.RolCoordinador)
}

// POST /ep-sedes/responsables/encargado
func (ctl *ExpedienteController) SetEncargado(c *fiber.Ctx) error {
	return ctl.asignarResponsable(c, model.RolEncargado)
}

// asignarResponsable cesa al titular ACTIVO del rol y levanta al nuevo en
// una sola transacción: nunca hay cero ni dos titulares visibles.
// Re-aplicar con el mismo usuario es idempotente.
func (ctl *ExpedienteController) asignarResponsable(c *fiber.Ctx, rol string) error {
	var req dto.AssignResponsableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var designado model.ExpedienteAcademicoModel
	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		hoy := time.Now()

		// cesar al titular actual (si no es el mismo usuario)
		if err := tx.Model(&model.ExpedienteAcademicoModel{}).
			Where("expediente_ep_sede_id = ?", req.EpSedeId).
			Where("expediente_rol = ?", rol).
			Where("expediente_estado = ?", model.EstadoActivo).
			Where("expediente_user_id <> ?", req.UserId).
			Updates(map[string]interface{}{
				"expediente_estado":        model.EstadoCesado,
				"expediente_vigente_hasta": hoy,
			}).Error; err != nil {
			return err
		}

		// levantar (o reutilizar) el expediente del nuevo titular
		err := tx.Where("expediente_user_id = ? AND expediente_ep_sede_id = ?",
			req.UserId, req.EpSedeId).
			First(&designado).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			designado = model.ExpedienteAcademicoModel{
				ExpedienteUserId:              req.UserId,
				ExpedienteEpSedeId:            req.EpSedeId,
				ExpedienteCodigoEstudiante:    req.CodigoEstudiante,
				ExpedienteCorreoInstitucional: req.CorreoInstitucional,
				ExpedienteRol:                 rol,
				ExpedienteEstado:              model.EstadoActivo,
				ExpedienteVigenteDesde:        &hoy,
			}
			return tx.Create(&designado).Error
		case err != nil:
			return err
		}

		designado.ExpedienteRol = rol
		designado.ExpedienteEstado = model.EstadoActivo
		designado.ExpedienteVigenteHasta = nil
		if designado.ExpedienteVigenteDesde == nil {
			designado.ExpedienteVigenteDesde = &hoy
		}
		if req.CodigoEstudiante != nil {
			designado.ExpedienteCodigoEstudiante = req.CodigoEstudiante
		}
		if req.CorreoInstitucional != nil {
			designado.ExpedienteCorreoInstitucional = req.CorreoInstitucional
		}
		return tx.Save(&designado).Error
	})
	if err != nil {
		log.Printf("[ERROR] asignando %s en ep_sede %s: %v", rol, req.EpSedeId, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo asignar el responsable")
	}

	return helper.JsonOK(c, "Responsable asignado", designado)
}
