package controller

import (
	"errors"
	"strconv"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"univm_backend/internals/constants"
	expService "univm_backend/internals/features/academico/expediente/service"
	insService "univm_backend/internals/features/vm/inscripcion/service"
	prModel "univm_backend/internals/features/vm/proyecto/model"
	sesModel "univm_backend/internals/features/vm/sesion/model"
	helper "univm_backend/internals/helpers"
)

/* ==============================
   Controller
============================== */

type InscripcionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Scope     *expService.EpScopeService
	Eleg      *insService.ElegibilidadService
}

func NewInscripcionController(db *gorm.DB, scope *expService.EpScopeService) *InscripcionController {
	return &InscripcionController{
		DB:        db,
		Validator: validator.New(),
		Scope:     scope,
		Eleg:      insService.NewElegibilidadService(db),
	}
}

func (ctl *InscripcionController) cargarProyecto(c *fiber.Ctx) (*prModel.ProyectoModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Id no válido")
	}
	var p prModel.ProyectoModel
	if err := ctl.DB.WithContext(c.Context()).First(&p, "proyecto_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Proyecto no encontrado")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return &p, nil
}

/* ==============================
   Inscripción
============================== */

// POST /proyectos/:id/inscribirse
// Recorre la escalera de elegibilidad y, si pasa, crea (o reutiliza) la
// participación INSCRITO del alumno.
func (ctl *InscripcionController) Inscribir(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	p, ferr := ctl.cargarProyecto(c)
	if p == nil {
		return ferr
	}

	exp, err := ctl.Scope.ExpedientePorUser(userId, p.ProyectoEpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	epSedeExp := uuid.Nil
	expedienteId := uuid.Nil
	if exp != nil {
		epSedeExp = exp.ExpedienteEpSedeId
		expedienteId = exp.ExpedienteId
	}

	snap, err := ctl.Eleg.CargarSnapshot(p, expedienteId, epSedeExp)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if f := insService.Evaluar(snap); f != nil {
		return helper.JsonFail(c, f.Status, f.Code, f.Message, fiber.Map(f.Meta))
	}

	var part prModel.ParticipacionModel
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("participacion_participable_type IN ?", sesModel.AliasesProyecto).
			Where("participacion_participable_id = ?", p.ProyectoId).
			Where("participacion_expediente_id = ?", expedienteId).
			First(&part).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			part = prModel.ParticipacionModel{
				ParticipacionParticipableType: sesModel.TagProyecto,
				ParticipacionParticipableId:   p.ProyectoId,
				ParticipacionExpedienteId:     expedienteId,
				ParticipacionRol:              prModel.ParticipacionRolAlumno,
				ParticipacionEstado:           prModel.ParticipacionInscrito,
			}
			return tx.Create(&part).Error
		}
		return err
	})
	if err != nil {
		// carrera entre dos inscripciones del mismo alumno: el índice
		// único de la tripleta gana y se reporta como ya inscrito
		if esViolacionUnica(err) {
			return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "ALREADY_ENROLLED",
				"Ya estás inscrito en este proyecto.", nil)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCode(c, fiber.StatusCreated, "ENROLLED", fiber.Map{
		"participacion": part,
	})
}

// soloElegiblesParam: sin el parámetro se listan solo los elegibles.
func soloElegiblesParam(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	return strings.EqualFold(raw, "true") || raw == "1"
}

func esViolacionUnica(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	lo := strings.ToLower(err.Error())
	return strings.Contains(lo, "sqlstate 23505") || strings.Contains(lo, "duplicate key")
}

/* ==============================
   Listados staff
============================== */

type inscritoItem struct {
	Participacion prModel.ParticipacionModel `json:"participacion"`
	Nombres       string                     `json:"nombres"`
	Apellidos     string                     `json:"apellidos"`
	Codigo        *string                    `json:"codigo,omitempty"`
	AcumuladoMin  int                        `json:"acumulado_min"`
	RequeridoMin  int                        `json:"requerido_min"`
	Porcentaje    int                        `json:"porcentaje"`
	Finalizado    bool                       `json:"finalizado"`
}

// GET /proyectos/:id/inscritos?estado=TODOS|ACTIVOS|FINALIZADOS&roles=ALUMNO,...
func (ctl *InscripcionController) ListarInscritos(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	p, ferr := ctl.cargarProyecto(c)
	if p == nil {
		return ferr
	}

	ok, err := ctl.Scope.UserManagesEpSede(userId, p.ProyectoEpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas esta EP-Sede")
	}

	userCol := ctl.Scope.UserCol()
	type filaCruda struct {
		prModel.ParticipacionModel
		Nombres   string  `gorm:"column:user_first_name"`
		Apellidos string  `gorm:"column:user_last_name"`
		Codigo    *string `gorm:"column:expediente_codigo_estudiante"`
	}

	q := ctl.DB.WithContext(c.Context()).Table("vm_participaciones").
		Joins("JOIN expedientes_academicos ON expedientes_academicos.expediente_id = vm_participaciones.participacion_expediente_id").
		Joins("JOIN users ON users.user_id = expedientes_academicos."+userCol).
		Where("vm_participaciones.participacion_participable_type IN ?", sesModel.AliasesProyecto).
		Where("vm_participaciones.participacion_participable_id = ?", p.ProyectoId).
		Where("vm_participaciones.participacion_deleted_at IS NULL")

	switch strings.ToUpper(strings.TrimSpace(c.Query("estado", "TODOS"))) {
	case "ACTIVOS":
		q = q.Where("vm_participaciones.participacion_estado IN ?", prModel.EstadosParticipacionActiva)
	case "FINALIZADOS":
		q = q.Where("vm_participaciones.participacion_estado = ?", prModel.ParticipacionFinalizado)
	}
	if roles := strings.TrimSpace(c.Query("roles")); roles != "" {
		lista := []string{}
		for _, r := range strings.Split(roles, ",") {
			if r = strings.ToUpper(strings.TrimSpace(r)); r != "" {
				lista = append(lista, r)
			}
		}
		if len(lista) > 0 {
			q = q.Where("vm_participaciones.participacion_rol IN ?", lista)
		}
	}

	var crudas []filaCruda
	if err := q.Select("vm_participaciones.*, users.user_first_name, users.user_last_name, expedientes_academicos.expediente_codigo_estudiante").
		Order("users.user_last_name ASC, users.user_first_name ASC").
		Scan(&crudas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// minutos acumulados en lote, una consulta por lista
	requerido := p.MinutosRequeridos()
	items := make([]inscritoItem, 0, len(crudas))
	activos := 0
	finalizados := 0
	for i := range crudas {
		cr := &crudas[i]
		acum, err := ctl.Eleg.MinutosValidadosProyecto(cr.ParticipacionExpedienteId, p.ProyectoId)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		pct := 0
		if requerido > 0 {
			pct = acum * 100 / requerido
			if pct > 100 {
				pct = 100
			}
		}
		fin := cr.ParticipacionEstado == prModel.ParticipacionFinalizado ||
			(requerido > 0 && acum >= requerido)
		if fin {
			finalizados++
		} else {
			activos++
		}
		items = append(items, inscritoItem{
			Participacion: cr.ParticipacionModel,
			Nombres:       cr.Nombres,
			Apellidos:     cr.Apellidos,
			Codigo:        cr.Codigo,
			AcumuladoMin:  acum,
			RequeridoMin:  requerido,
			Porcentaje:    pct,
			Finalizado:    fin,
		})
	}

	return helper.JsonList(c, "OK", items, fiber.Map{
		"resumen": fiber.Map{
			"total":       len(items),
			"activos":     activos,
			"finalizados": finalizados,
		},
	})
}

type candidatoItem struct {
	ExpedienteId uuid.UUID              `json:"expediente_id"`
	Nombres      string                 `json:"nombres"`
	Apellidos    string                 `json:"apellidos"`
	Codigo       *string                `json:"codigo,omitempty"`
	Elegible     bool                   `json:"elegible"`
	Razon        string                 `json:"razon,omitempty"`
	Meta         map[string]interface{} `json:"meta,omitempty"`
}

// GET /proyectos/:id/candidatos?solo_elegibles=&q=&limit=
// Aplica la misma escalera, candidato por candidato, devolviendo la
// regla que rechaza a cada uno en vez de un único error.
func (ctl *InscripcionController) ListarCandidatos(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	p, ferr := ctl.cargarProyecto(c)
	if p == nil {
		return ferr
	}

	ok, err := ctl.Scope.UserManagesEpSede(userId, p.ProyectoEpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas esta EP-Sede")
	}

	userCol := ctl.Scope.UserCol()
	type filaCruda struct {
		ExpedienteId uuid.UUID `gorm:"column:expediente_id"`
		EpSedeId     uuid.UUID `gorm:"column:expediente_ep_sede_id"`
		Nombres      string    `gorm:"column:user_first_name"`
		Apellidos    string    `gorm:"column:user_last_name"`
		Codigo       *string   `gorm:"column:expediente_codigo_estudiante"`
	}

	limit := 100
	if n := strings.TrimSpace(c.Query("limit")); n != "" {
		if v, err := strconv.Atoi(n); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}

	q := ctl.DB.WithContext(c.Context()).Table("expedientes_academicos").
		Joins("JOIN users ON users.user_id = expedientes_academicos."+userCol).
		Where("expedientes_academicos.expediente_ep_sede_id = ?", p.ProyectoEpSedeId).
		Where("expedientes_academicos.expediente_estado = ?", constants.EstadoActivo).
		Where("expedientes_academicos.expediente_rol = ?", constants.RolEstudiante).
		Where("expedientes_academicos.expediente_deleted_at IS NULL")
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(`LOWER(users.user_first_name) LIKE ? OR LOWER(users.user_last_name) LIKE ?
			OR LOWER(expedientes_academicos.expediente_codigo_estudiante) LIKE ?`, like, like, like)
	}

	var crudas []filaCruda
	if err := q.Select(`expedientes_academicos.expediente_id,
			expedientes_academicos.expediente_ep_sede_id,
			expedientes_academicos.expediente_codigo_estudiante,
			users.user_first_name, users.user_last_name`).
		Order("users.user_last_name ASC, users.user_first_name ASC").
		Limit(limit).
		Scan(&crudas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	soloElegibles := soloElegiblesParam(c.Query("solo_elegibles"))

	items := make([]candidatoItem, 0, len(crudas))
	for i := range crudas {
		cr := &crudas[i]
		snap, err := ctl.Eleg.CargarSnapshot(p, cr.ExpedienteId, cr.EpSedeId)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		item := candidatoItem{
			ExpedienteId: cr.ExpedienteId,
			Nombres:      cr.Nombres,
			Apellidos:    cr.Apellidos,
			Codigo:       cr.Codigo,
			Elegible:     true,
		}
		if f := insService.Evaluar(snap); f != nil {
			item.Elegible = false
			item.Razon = f.Code
			item.Meta = f.Meta
		}
		if soloElegibles && !item.Elegible {
			continue
		}
		items = append(items, item)
	}

	return helper.JsonOK(c, "OK", items)
}
