package controller

import (
	"errors"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	expModel "univm_backend/internals/features/academico/expediente/model"
	expService "univm_backend/internals/features/academico/expediente/service"
	asService "univm_backend/internals/features/vm/asistencia/service"
	perModel "univm_backend/internals/features/vm/periodo/model"
	prModel "univm_backend/internals/features/vm/proyecto/model"
	sesModel "univm_backend/internals/features/vm/sesion/model"
	sesService "univm_backend/internals/features/vm/sesion/service"
	helper "univm_backend/internals/helpers"
)

/* ==============================
   Controller
============================== */

type AsistenciaController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Scope     *expService.EpScopeService
	Svc       *asService.AsistenciaService
	Resolver  *sesService.ResolverService
}

func NewAsistenciaController(db *gorm.DB, scope *expService.EpScopeService) *AsistenciaController {
	return &AsistenciaController{
		DB:        db,
		Validator: validator.New(),
		Scope:     scope,
		Svc:       asService.NewAsistenciaService(db),
		Resolver:  sesService.NewResolverService(db),
	}
}

/* ==============================
   Shared plumbing
============================== */

func (ctl *AsistenciaController) cargarSesion(c *fiber.Ctx) (*sesModel.SesionModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}
	var ses sesModel.SesionModel
	if err := ctl.DB.WithContext(c.Context()).First(&ses, "sesion_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Sesión no encontrada")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return &ses, nil
}

// contextoSesion resuelve dueño/ep_sede/periodo y traduce los huecos a
// fallas de precondición.
func (ctl *AsistenciaController) contextoSesion(ses *sesModel.SesionModel) (*sesService.DatosSesion, *helper.Falla) {
	datos, err := ctl.Resolver.DatosDesdeSesion(ses)
	if err != nil || datos.Tipo == sesModel.OwnerDesconocido {
		return nil, helper.NuevaFalla("SESION_SIN_DUENO",
			"La sesión no está vinculada a un proceso o evento reconocible", nil)
	}
	if datos.EpSedeId == nil {
		return nil, helper.NuevaFalla("SESION_SIN_EP_SEDE",
			"La sesión no tiene una escuela-sede asociada", nil)
	}
	return datos, nil
}

// participacionActiva: participación INSCRITO/CONFIRMADO del expediente
// en el participable de la sesión.
func (ctl *AsistenciaController) participacionActiva(datos *sesService.DatosSesion, expedienteId uuid.UUID) (*prModel.ParticipacionModel, error) {
	var p prModel.ParticipacionModel
	err := ctl.DB.
		Where("participacion_participable_type IN ?", sesModel.AliasesDeTag(datos.ParticipableTag)).
		Where("participacion_participable_id = ?", datos.ParticipableId).
		Where("participacion_expediente_id = ?", expedienteId).
		Where("participacion_estado IN ?", prModel.EstadosParticipacionActiva).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// expedientePorCodigo: expediente por código de estudiante en una EP-Sede.
func (ctl *AsistenciaController) expedientePorCodigo(codigo string, epSedeId uuid.UUID) (*expModel.ExpedienteAcademicoModel, error) {
	var exp expModel.ExpedienteAcademicoModel
	err := ctl.DB.
		Where("expediente_codigo_estudiante = ?", strings.TrimSpace(codigo)).
		Where("expediente_ep_sede_id = ?", epSedeId).
		First(&exp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// periodoDeSesion: el del proyecto/evento dueño o, en su defecto, el
// vigente en la fecha de la sesión.
func (ctl *AsistenciaController) periodoDeSesion(datos *sesService.DatosSesion, ses *sesModel.SesionModel) *uuid.UUID {
	if datos.PeriodoId != nil {
		return datos.PeriodoId
	}
	per, err := perModel.VigentePorFecha(ctl.DB, ses.SesionFecha)
	if err != nil || per == nil {
		return nil
	}
	id := per.PeriodoId
	return &id
}

func actividadSesion(ses *sesModel.SesionModel, justificada bool) string {
	nombre := ses.SesionId.String()[:8]
	if ses.SesionNombre != nil && strings.TrimSpace(*ses.SesionNombre) != "" {
		nombre = *ses.SesionNombre
	}
	if justificada {
		return "Asistencia (justificada) a sesión " + nombre
	}
	return "Asistencia a sesión " + nombre
}

func metaCliente(c *fiber.Ctx) map[string]interface{} {
	return map[string]interface{}{
		"ip": c.IP(),
		"ua": string(c.Request().Header.UserAgent()),
	}
}

func responderFalla(c *fiber.Ctx, f *helper.Falla) error {
	status := f.Status
	if status == 0 {
		status = fiber.StatusUnprocessableEntity
	}
	return helper.JsonFail(c, status, f.Code, f.Message, fiber.Map(f.Meta))
}
