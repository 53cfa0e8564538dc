package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	expService "univm_backend/internals/features/academico/expediente/service"
	insService "univm_backend/internals/features/vm/inscripcion/service"
	perModel "univm_backend/internals/features/vm/periodo/model"
	dto "univm_backend/internals/features/vm/proyecto/dto"
	model "univm_backend/internals/features/vm/proyecto/model"
	sesmodel "univm_backend/internals/features/vm/sesion/model"
	helper "univm_backend/internals/helpers"
)

// ProyectoAlumnoController arma el panel del alumno: niveles completados,
// nivel objetivo, pendientes, proyecto en curso e inscribibles.
type ProyectoAlumnoController struct {
	DB    *gorm.DB
	Scope *expService.EpScopeService
	Eleg  *insService.ElegibilidadService
}

func NewProyectoAlumnoController(db *gorm.DB, scope *expService.EpScopeService) *ProyectoAlumnoController {
	return &ProyectoAlumnoController{
		DB:    db,
		Scope: scope,
		Eleg:  insService.NewElegibilidadService(db),
	}
}

// GET /alumno/proyectos
func (ctl *ProyectoAlumnoController) Index(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	exp, err := ctl.Scope.ExpedienteActivo(userId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if exp == nil {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "SIN_EXPEDIENTE",
			"No tienes un expediente académico activo", nil)
	}

	completados, err := ctl.Eleg.NivelesCompletados(exp.ExpedienteId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// nivel objetivo: el menor no completado, topado en 10
	nivelObjetivo := model.NivelMaximo
	for n := 1; n <= model.NivelMaximo; n++ {
		if !completados[n] {
			nivelObjetivo = n
			break
		}
	}

	pendiente, err := ctl.Eleg.BuscarPendienteVinculado(exp.ExpedienteId, uuid.Nil)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	periodo, err := perModel.VigentePorFecha(ctl.DB.WithContext(c.Context()), time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// proyecto vinculado EN_CURSO del periodo donde ya participa
	var actual *model.ProyectoModel
	if periodo != nil {
		var filas []model.ProyectoModel
		err := ctl.DB.WithContext(c.Context()).
			Joins("JOIN vm_participaciones ON vm_participaciones.participacion_participable_id = vm_proyectos.proyecto_id").
			Where("vm_participaciones.participacion_participable_type IN ?", sesmodel.AliasesProyecto).
			Where("vm_participaciones.participacion_expediente_id = ?", exp.ExpedienteId).
			Where("vm_participaciones.participacion_deleted_at IS NULL").
			Where("vm_proyectos.proyecto_tipo IN ?", []string{model.TipoVinculado, "PROYECTO"}).
			Where("vm_proyectos.proyecto_estado = ?", model.EstadoEnCurso).
			Where("vm_proyectos.proyecto_periodo_id = ?", periodo.PeriodoId).
			Limit(1).Find(&filas).Error
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if len(filas) > 0 {
			actual = &filas[0]
		}
	}

	// inscribibles: vinculados abiertos del nivel objetivo en su EP-Sede;
	// con un pendiente a cuestas la lista queda vacía
	inscribibles := []dto.ProyectoAlumnoItem{}
	if pendiente == nil {
		var candidatos []model.ProyectoModel
		q := ctl.DB.WithContext(c.Context()).Model(&model.ProyectoModel{}).
			Where("proyecto_ep_sede_id = ?", exp.ExpedienteEpSedeId).
			Where("proyecto_tipo IN ?", []string{model.TipoVinculado, "PROYECTO"}).
			Where("proyecto_estado IN ?", []string{model.EstadoPlanificado, model.EstadoEnCurso}).
			Where("proyecto_nivel = ?", nivelObjetivo)
		if periodo != nil {
			q = q.Where("proyecto_periodo_id = ?", periodo.PeriodoId)
		}
		if err := q.Find(&candidatos).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		for i := range candidatos {
			p := &candidatos[i]
			snap, err := ctl.Eleg.CargarSnapshot(p, exp.ExpedienteId, exp.ExpedienteEpSedeId)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
			}
			item := dto.ProyectoAlumnoItem{Proyecto: p, RequeridoMin: p.MinutosRequeridos()}
			if f := insService.Evaluar(snap); f != nil {
				item.Razon = f.Code
				item.Meta = f.Meta
			}
			inscribibles = append(inscribibles, item)
		}
	}

	// los LIBRE se listan siempre
	libres := []dto.ProyectoAlumnoItem{}
	var filasLibres []model.ProyectoModel
	qLibres := ctl.DB.WithContext(c.Context()).Model(&model.ProyectoModel{}).
		Where("proyecto_ep_sede_id = ?", exp.ExpedienteEpSedeId).
		Where("proyecto_tipo = ?", model.TipoLibre).
		Where("proyecto_estado IN ?", []string{model.EstadoPlanificado, model.EstadoEnCurso})
	if periodo != nil {
		qLibres = qLibres.Where("proyecto_periodo_id = ?", periodo.PeriodoId)
	}
	if err := qLibres.Find(&filasLibres).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	for i := range filasLibres {
		p := &filasLibres[i]
		snap, err := ctl.Eleg.CargarSnapshot(p, exp.ExpedienteId, exp.ExpedienteEpSedeId)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		item := dto.ProyectoAlumnoItem{Proyecto: p, RequeridoMin: p.MinutosRequeridos()}
		if f := insService.Evaluar(snap); f != nil {
			item.Razon = f.Code
			item.Meta = f.Meta
		}
		libres = append(libres, item)
	}

	resp := fiber.Map{
		"expediente_id":      exp.ExpedienteId,
		"niveles_completados": clavesOrdenadas(completados),
		"nivel_objetivo":     nivelObjetivo,
		"actual":             actual,
		"inscribibles":       inscribibles,
		"libres":             libres,
	}
	if pendiente != nil {
		resp["pendiente"] = fiber.Map{
			"proyecto_id":   pendiente.ProyectoId,
			"nivel":         pendiente.Nivel,
			"periodo":       pendiente.Periodo,
			"requerido_min": pendiente.RequeridoMin,
			"acumulado_min": pendiente.AcumuladoMin,
			"faltan_min":    pendiente.FaltanMin(),
			"cerrado":       pendiente.Cerrado,
		}
	}
	if periodo != nil {
		resp["periodo"] = fiber.Map{
			"periodo_id":     periodo.PeriodoId,
			"periodo_codigo": periodo.PeriodoCodigo,
		}
	}
	return helper.JsonOK(c, "OK", resp)
}

func clavesOrdenadas(m map[int]bool) []int {
	out := []int{}
	for n := 1; n <= model.NivelMaximo; n++ {
		if m[n] {
			out = append(out, n)
		}
	}
	return out
}
