package controller

import (
	"errors"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dto "univm_backend/internals/features/academico/institucion/dto"
	model "univm_backend/internals/features/academico/institucion/model"
	helper "univm_backend/internals/helpers"
)

/* ==============================
   Controller
============================== */

type InstitucionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewInstitucionController(db *gorm.DB) *InstitucionController {
	return &InstitucionController{
		DB:        db,
		Validator: validator.New(),
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// fallback string check (driver pgx no envuelve *pq.Error)
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}

/* ==============================
   Universidad (singleton)
============================== */

// GET /universidad
func (ctl *InstitucionController) ShowUniversidad(c *fiber.Ctx) error {
	uni, err := model.Unica(ctl.DB.WithContext(c.Context()))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo cargar la universidad")
	}
	return helper.JsonOK(c, "OK", uni)
}

// PUT /universidad
func (ctl *InstitucionController) UpdateUniversidad(c *fiber.Ctx) error {
	var req dto.UpdateUniversidadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	uni, err := model.Unica(ctl.DB.WithContext(c.Context()))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo cargar la universidad")
	}
	req.ApplyTo(uni)
	if err := ctl.DB.WithContext(c.Context()).Save(uni).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Universidad actualizada", uni)
}

/* ==============================
   Facultad
============================== */

// POST /facultades
func (ctl *InstitucionController) CreateFacultad(c *fiber.Ctx) error {
	var req dto.CreateFacultadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var n int64
	ctl.DB.WithContext(c.Context()).Model(&model.FacultadModel{}).
		Where("facultad_universidad_id = ? AND facultad_codigo = ?", req.FacultadUniversidadId, req.FacultadCodigo).
		Count(&n)
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Ya existe una facultad con ese código")
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Ya existe una facultad con ese código")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Facultad creada", m)
}

// GET /facultades
func (ctl *InstitucionController) ListFacultades(c *fiber.Ctx) error {
	var filas []model.FacultadModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("facultad_codigo ASC").Find(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", filas)
}

/* ==============================
   Escuela profesional
============================== */

// POST /escuelas
func (ctl *InstitucionController) CreateEscuela(c *fiber.Ctx) error {
	var req dto.CreateEscuelaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var fac model.FacultadModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&fac, "facultad_id = ?", req.EscuelaFacultadId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Facultad no encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var n int64
	ctl.DB.WithContext(c.Context()).Model(&model.EscuelaProfesionalModel{}).
		Where("escuela_facultad_id = ? AND escuela_codigo = ?", req.EscuelaFacultadId, req.EscuelaCodigo).
		Count(&n)
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Ya existe una escuela con ese código en la facultad")
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Ya existe una escuela con ese código en la facultad")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Escuela profesional creada", m)
}

/* ==============================
   Sede
============================== */

// POST /sedes
// La sede principal es única: marcar una nueva como principal desmarca a
// las demás dentro de la misma transacción, para que ningún lector vea
// dos principales a la vez.
func (ctl *InstitucionController) CreateSede(c *fiber.Ctx) error {
	var req dto.CreateSedeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var n int64
	ctl.DB.WithContext(c.Context()).Model(&model.SedeModel{}).
		Where("sede_universidad_id = ? AND sede_nombre = ?", req.SedeUniversidadId, req.SedeNombre).
		Count(&n)
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Ya existe una sede con ese nombre")
	}

	m := req.ToModel()
	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if m.SedeEsPrincipal {
			if err := tx.Model(&model.SedeModel{}).
				Where("sede_universidad_id = ? AND sede_es_principal = TRUE", m.SedeUniversidadId).
				Update("sede_es_principal", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Ya existe una sede con ese nombre")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Sede creada", m)
}

// GET /sedes
func (ctl *InstitucionController) ListSedes(c *fiber.Ctx) error {
	var filas []model.SedeModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("sede_es_principal DESC, sede_nombre ASC").Find(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", filas)
}

/* ==============================
   EP-Sede
============================== */

// POST /ep-sedes
// Invariante: la escuela y la sede deben colgar de la misma universidad.
func (ctl *InstitucionController) CreateEpSede(c *fiber.Ctx) error {
	var req dto.CreateEpSedeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var escuela model.EscuelaProfesionalModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&escuela, "escuela_id = ?", req.EpSedeEscuelaId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Escuela no encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var sede model.SedeModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&sede, "sede_id = ?", req.EpSedeSedeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sede no encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var fac model.FacultadModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&fac, "facultad_id = ?", escuela.EscuelaFacultadId).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if fac.FacultadUniversidadId != sede.SedeUniversidadId {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "UNIVERSIDAD_DISTINTA",
			"La escuela y la sede pertenecen a universidades distintas", nil)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "La escuela ya existe en esa sede")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "EP-Sede creada", m)
}

// DELETE /ep-sedes/:id
func (ctl *InstitucionController) DeleteEpSede(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}
	res := ctl.DB.WithContext(c.Context()).
		Delete(&model.EpSedeModel{}, "ep_sede_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "EP-Sede no encontrada")
	}
	return helper.JsonOK(c, "EP-Sede eliminada", fiber.Map{"ep_sede_id": id})
}
