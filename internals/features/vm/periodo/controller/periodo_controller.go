package controller

import (
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "univm_backend/internals/features/vm/periodo/model"
	helper "univm_backend/internals/helpers"
)

type PeriodoController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPeriodoController(db *gorm.DB) *PeriodoController {
	return &PeriodoController{DB: db, Validator: validator.New()}
}

type createPeriodoRequest struct {
	PeriodoCodigo      string `json:"periodo_codigo" validate:"required,max=20"`
	PeriodoFechaInicio string `json:"periodo_fecha_inicio" validate:"required,datetime=2006-01-02"`
	PeriodoFechaFin    string `json:"periodo_fecha_fin" validate:"required,datetime=2006-01-02"`
}

// POST /periodos
func (ctl *PeriodoController) Create(c *fiber.Ctx) error {
	var req createPeriodoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	ini, _ := time.ParseInLocation("2006-01-02", req.PeriodoFechaInicio, time.Local)
	fin, _ := time.ParseInLocation("2006-01-02", req.PeriodoFechaFin, time.Local)
	if fin.Before(ini) {
		return helper.JsonError(c, fiber.StatusBadRequest, "La fecha de fin es anterior al inicio")
	}

	m := model.PeriodoAcademicoModel{
		PeriodoCodigo:      strings.TrimSpace(req.PeriodoCodigo),
		PeriodoFechaInicio: ini,
		PeriodoFechaFin:    fin,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "No se pudo crear el periodo (¿código duplicado?)")
	}
	return helper.JsonCreated(c, "Periodo creado", m)
}

// GET /periodos
func (ctl *PeriodoController) Index(c *fiber.Ctx) error {
	var filas []model.PeriodoAcademicoModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("periodo_fecha_inicio DESC").Find(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", filas)
}

// GET /periodos/vigente
func (ctl *PeriodoController) Vigente(c *fiber.Ctx) error {
	per, err := model.VigentePorFecha(ctl.DB.WithContext(c.Context()), time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if per == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "No hay periodo vigente")
	}
	return helper.JsonOK(c, "OK", per)
}
