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
	dto "univm_backend/internals/features/vm/proyecto/dto"
	model "univm_backend/internals/features/vm/proyecto/model"
	sesmodel "univm_backend/internals/features/vm/sesion/model"
	helper "univm_backend/internals/helpers"
)

/* ==============================
   Controller
============================== */

type ProyectoController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Scope     *expService.EpScopeService
}

func NewProyectoController(db *gorm.DB, scope *expService.EpScopeService) *ProyectoController {
	return &ProyectoController{
		DB:        db,
		Validator: validator.New(),
		Scope:     scope,
	}
}

// codigoProyecto: PRJ-<marca de tiempo>-EP<fragmento ep_sede>-<fragmento user>
func codigoProyecto(epSedeId, userId uuid.UUID) string {
	ep := strings.ReplaceAll(epSedeId.String(), "-", "")[:6]
	us := strings.ReplaceAll(userId.String(), "-", "")[:6]
	return fmt.Sprintf("PRJ-%s-EP%s-%s", time.Now().Format("20060102150405"), ep, us)
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

/* ==============================
   Staff
============================== */

// POST /proyectos
func (ctl *ProyectoController) Create(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateProyectoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	ok, err := ctl.Scope.UserManagesEpSede(userId, req.ProyectoEpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas esta EP-Sede")
	}

	m := req.ToModel()
	m.ProyectoCodigo = codigoProyecto(m.ProyectoEpSedeId, userId)

	if m.EsVinculado() {
		if m.ProyectoNivel == nil {
			return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "NIVEL_REQUERIDO",
				"Un proyecto vinculado necesita nivel (1..10)", nil)
		}
		// el nivel no puede repetirse en la misma EP-Sede y periodo
		var n int64
		ctl.DB.WithContext(c.Context()).Model(&model.ProyectoModel{}).
			Where("proyecto_ep_sede_id = ? AND proyecto_periodo_id = ?", m.ProyectoEpSedeId, m.ProyectoPeriodoId).
			Where("proyecto_tipo IN ?", []string{model.TipoVinculado, "PROYECTO"}).
			Where("proyecto_nivel = ?", *m.ProyectoNivel).
			Where("proyecto_estado NOT IN ?", []string{model.EstadoCancelado}).
			Count(&n)
		if n > 0 {
			return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "NIVEL_OCUPADO",
				"Ya existe un proyecto vinculado de ese nivel en el periodo", fiber.Map{"nivel": *m.ProyectoNivel})
		}
	}

	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Proyecto creado", m)
}

// POST /proyectos/:id/publicar
// Se exige al menos un proceso: un proyecto sin fases no tiene dónde
// colgar sesiones ni asistencia.
func (ctl *ProyectoController) Publicar(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}

	var p model.ProyectoModel
	if err := ctl.DB.WithContext(c.Context()).First(&p, "proyecto_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Proyecto no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ok, err := ctl.Scope.UserManagesEpSede(userId, p.ProyectoEpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas esta EP-Sede")
	}

	if p.ProyectoEstado != model.EstadoPlanificado {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "ESTADO_INVALIDO",
			"Solo un proyecto planificado puede publicarse", fiber.Map{"estado": p.ProyectoEstado})
	}

	var nProcesos int64
	ctl.DB.WithContext(c.Context()).Model(&model.ProcesoModel{}).
		Where("proceso_proyecto_id = ?", p.ProyectoId).Count(&nProcesos)
	if nProcesos == 0 {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "SIN_PROCESOS",
			"El proyecto necesita al menos un proceso antes de publicarse", nil)
	}

	p.ProyectoEstado = model.EstadoEnCurso
	if err := ctl.DB.WithContext(c.Context()).Save(&p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Proyecto publicado", p)
}

// GET /proyectos/niveles-disponibles?ep_sede_id=&periodo_id=&exclude_proyecto_id=
func (ctl *ProyectoController) NivelesDisponibles(c *fiber.Ctx) error {
	epSedeId, err := uuid.Parse(strings.TrimSpace(c.Query("ep_sede_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ep_sede_id no válido")
	}
	periodoId, err := uuid.Parse(strings.TrimSpace(c.Query("periodo_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "periodo_id no válido")
	}

	q := ctl.DB.WithContext(c.Context()).Model(&model.ProyectoModel{}).
		Where("proyecto_ep_sede_id = ? AND proyecto_periodo_id = ?", epSedeId, periodoId).
		Where("proyecto_tipo IN ?", []string{model.TipoVinculado, "PROYECTO"}).
		Where("proyecto_estado NOT IN ?", []string{model.EstadoCancelado}).
		Where("proyecto_nivel IS NOT NULL")
	if ex := strings.TrimSpace(c.Query("exclude_proyecto_id")); ex != "" {
		if exId, err := uuid.Parse(ex); err == nil {
			q = q.Where("proyecto_id <> ?", exId)
		}
	}

	var ocupados []int
	if err := q.Pluck("proyecto_nivel", &ocupados).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	tomado := map[int]bool{}
	for _, n := range ocupados {
		tomado[n] = true
	}
	libres := []int{}
	for n := 1; n <= model.NivelMaximo; n++ {
		if !tomado[n] {
			libres = append(libres, n)
		}
	}
	return helper.JsonOK(c, "OK", fiber.Map{"niveles": libres})
}

// GET /proyectos — listado staff acotado a las EP-Sedes que gestiona.
func (ctl *ProyectoController) Index(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	epSedes, err := ctl.Scope.EpSedesManagedBy(userId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(epSedes) == 0 {
		return helper.JsonList(c, "OK", []model.ProyectoModel{}, helper.BuildMeta(0, helper.ParseFiber(c, helper.DefaultOpts)))
	}

	p := helper.ParseFiber(c, helper.DefaultOpts)
	q := ctl.DB.WithContext(c.Context()).Model(&model.ProyectoModel{}).
		Where("proyecto_ep_sede_id IN ?", epSedes)

	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(proyecto_titulo) LIKE ? OR LOWER(proyecto_codigo) LIKE ?", like, like)
	}
	if s := strings.TrimSpace(c.Query("estado")); s != "" && !strings.EqualFold(s, "TODOS") {
		q = q.Where("proyecto_estado = ?", strings.ToUpper(s))
	}
	if s := strings.TrimSpace(c.Query("nivel")); s != "" {
		q = q.Where("proyecto_nivel = ?", s)
	}
	if s := strings.TrimSpace(c.Query("periodo_id")); s != "" {
		if pid, err := uuid.Parse(s); err == nil {
			q = q.Where("proyecto_periodo_id = ?", pid)
		}
	}
	if s := strings.TrimSpace(c.Query("ep_sede_id")); s != "" {
		if eid, err := uuid.Parse(s); err == nil {
			q = q.Where("proyecto_ep_sede_id = ?", eid)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var filas []model.ProyectoModel
	if err := q.Order("proyecto_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", filas, helper.BuildMeta(total, p))
}

// GET /proyectos/:id
// Un PLANIFICADO solo lo ven inscritos y gestores; publicado lo ve
// cualquiera que pertenezca a la EP-Sede.
func (ctl *ProyectoController) Show(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}

	var p model.ProyectoModel
	if err := ctl.DB.WithContext(c.Context()).First(&p, "proyecto_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Proyecto no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	gestiona, err := ctl.Scope.UserManagesEpSede(userId, p.ProyectoEpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !gestiona {
		pertenece, err := ctl.Scope.UserBelongsToEpSede(userId, p.ProyectoEpSedeId)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if !pertenece {
			return helper.JsonError(c, fiber.StatusForbidden, "No perteneces a esta EP-Sede")
		}
		if p.ProyectoEstado == model.EstadoPlanificado {
			inscrito, err := ctl.estaInscrito(c, userId, &p)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
			}
			if !inscrito {
				return helper.JsonError(c, fiber.StatusNotFound, "Proyecto no encontrado")
			}
		}
	}

	var procesos []model.ProcesoModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("proceso_proyecto_id = ?", p.ProyectoId).
		Order("proceso_orden ASC").Find(&procesos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"proyecto": p,
		"procesos": procesos,
	})
}

func (ctl *ProyectoController) estaInscrito(c *fiber.Ctx, userId uuid.UUID, p *model.ProyectoModel) (bool, error) {
	exp, err := ctl.Scope.ExpedientePorUser(userId, p.ProyectoEpSedeId)
	if err != nil || exp == nil {
		return false, err
	}
	var n int64
	err = ctl.DB.WithContext(c.Context()).Table("vm_participaciones").
		Where("participacion_participable_type IN ?", sesmodel.AliasesProyecto).
		Where("participacion_participable_id = ?", p.ProyectoId).
		Where("participacion_expediente_id = ?", exp.ExpedienteId).
		Where("participacion_deleted_at IS NULL").
		Count(&n).Error
	return n > 0, err
}

/* ==============================
   Procesos
============================== */

// POST /proyectos/:id/procesos
// El orden se auto-incrementa (max+1) dentro de la transacción para que
// dos creaciones concurrentes no compartan posición.
func (ctl *ProyectoController) CreateProceso(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	proyectoId, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}

	var req dto.CreateProcesoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var p model.ProyectoModel
	if err := ctl.DB.WithContext(c.Context()).First(&p, "proyecto_id = ?", proyectoId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Proyecto no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ok, err := ctl.Scope.UserManagesEpSede(userId, p.ProyectoEpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas esta EP-Sede")
	}

	m := req.ToModel(p.ProyectoId)
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var maxOrden int
		if err := tx.Model(&model.ProcesoModel{}).
			Where("proceso_proyecto_id = ?", p.ProyectoId).
			Select("COALESCE(MAX(proceso_orden), 0)").
			Scan(&maxOrden).Error; err != nil {
			return err
		}
		m.ProcesoOrden = maxOrden + 1
		return tx.Create(m).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Proceso creado", m)
}
