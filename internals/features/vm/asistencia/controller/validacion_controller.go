package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "univm_backend/internals/features/vm/asistencia/dto"
	asModel "univm_backend/internals/features/vm/asistencia/model"
	sesModel "univm_backend/internals/features/vm/sesion/model"
	sesService "univm_backend/internals/features/vm/sesion/service"
	helper "univm_backend/internals/helpers"
)

// POST /sesiones/:id/validar
// Valida en bloque las asistencias de la sesión. Cada fila se bloquea
// (FOR UPDATE) para que dos validaciones concurrentes no dupliquen
// registro de horas ni pisen minutos.
func (ctl *AsistenciaController) Validar(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
	}

	var req dto.ValidarAsistenciasRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	datos, falla := ctl.contextoSesion(ses)
	if falla != nil {
		return responderFalla(c, falla)
	}
	ok, err := ctl.Scope.UserManagesEpSede(userId, *datos.EpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas esta EP-Sede")
	}

	minutos := sesService.MinutosSesion(ses)
	periodoId := ctl.periodoDeSesion(datos, ses)

	validadas := 0
	registroCreado := false
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("asistencia_sesion_id = ?", ses.SesionId)
		if len(req.Ids) > 0 {
			q = q.Where("asistencia_id IN ?", req.Ids)
		}
		var filas []asModel.AsistenciaModel
		if err := q.Find(&filas).Error; err != nil {
			return err
		}

		ahora := time.Now()
		for i := range filas {
			a := &filas[i]
			a.AsistenciaEstado = asModel.AsistenciaValidado
			a.AsistenciaMinutosValidados = minutos
			if a.AsistenciaCheckOutAt == nil {
				a.AsistenciaCheckOutAt = &ahora
			}
			if err := tx.Save(a).Error; err != nil {
				return err
			}
			if req.CrearRegistro() && minutos > 0 {
				if _, err := ctl.Svc.UpsertRegistroHoras(tx, a, *datos.EpSedeId, periodoId,
					ses.SesionFecha, minutos, actividadSesion(ses, false)); err != nil {
					return err
				}
				registroCreado = true
			}
			validadas++
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCode(c, fiber.StatusOK, "VALIDATED", fiber.Map{
		"validadas":              validadas,
		"minutos_por_asistencia": minutos,
		"registro_horas_creado":  registroCreado,
	})
}

/* ==============================
   Roster
============================== */

func (ctl *AsistenciaController) filasRoster(ses *sesModel.SesionModel, datos *sesService.DatosSesion) ([]dto.ParticipanteRow, error) {
	userCol := ctl.Scope.UserCol()

	type filaCruda struct {
		ExpedienteId     uuid.UUID  `gorm:"column:expediente_id"`
		Codigo           *string    `gorm:"column:expediente_codigo_estudiante"`
		Nombres          string     `gorm:"column:user_first_name"`
		Apellidos        string     `gorm:"column:user_last_name"`
		Dni              string     `gorm:"column:user_doc_numero"`
		Metodo           *string    `gorm:"column:asistencia_metodo"`
		Estado           *string    `gorm:"column:asistencia_estado"`
		CheckInAt        *time.Time `gorm:"column:asistencia_check_in_at"`
		MinutosValidados *int       `gorm:"column:asistencia_minutos_validados"`
		FueraDeHora      *bool      `gorm:"column:fuera_de_hora"`
	}

	var crudas []filaCruda
	err := ctl.DB.Table("vm_participaciones").
		Joins("JOIN expedientes_academicos ON expedientes_academicos.expediente_id = vm_participaciones.participacion_expediente_id").
		Joins("JOIN users ON users.user_id = expedientes_academicos."+userCol).
		Joins("LEFT JOIN vm_asistencias ON vm_asistencias.asistencia_expediente_id = vm_participaciones.participacion_expediente_id AND vm_asistencias.asistencia_sesion_id = ?", ses.SesionId).
		Where("vm_participaciones.participacion_participable_type IN ?", sesModel.AliasesDeTag(datos.ParticipableTag)).
		Where("vm_participaciones.participacion_participable_id = ?", datos.ParticipableId).
		Where("vm_participaciones.participacion_rol = ?", "ALUMNO").
		Where("vm_participaciones.participacion_estado IN ?", []string{"INSCRITO", "CONFIRMADO"}).
		Where("vm_participaciones.participacion_deleted_at IS NULL").
		Select(`expedientes_academicos.expediente_id,
			expedientes_academicos.expediente_codigo_estudiante,
			users.user_first_name, users.user_last_name, users.user_doc_numero,
			vm_asistencias.asistencia_metodo, vm_asistencias.asistencia_estado,
			vm_asistencias.asistencia_check_in_at, vm_asistencias.asistencia_minutos_validados,
			(vm_asistencias.asistencia_meta ->> 'fuera_de_hora')::boolean AS fuera_de_hora`).
		Order("users.user_last_name ASC, users.user_first_name ASC").
		Scan(&crudas).Error
	if err != nil {
		return nil, err
	}

	ahora := time.Now()

	filas := make([]dto.ParticipanteRow, 0, len(crudas))
	for i := range crudas {
		cr := &crudas[i]
		row := dto.ParticipanteRow{
			ExpedienteId: cr.ExpedienteId,
			Nombres:      cr.Nombres,
			Apellidos:    cr.Apellidos,
			Dni:          cr.Dni,
		}
		if cr.Codigo != nil {
			row.Codigo = *cr.Codigo
		}
		switch {
		case cr.Metodo != nil:
			row.EstadoCalculado = "PRESENTE"
			row.Metodo = asModel.MetodoMostrado(*cr.Metodo, cr.FueraDeHora != nil && *cr.FueraDeHora)
			row.CheckInAt = cr.CheckInAt
			if cr.Estado != nil {
				row.EstadoAsistencia = *cr.Estado
			}
			if cr.MinutosValidados != nil {
				row.MinutosValidados = *cr.MinutosValidados
			}
		default:
			row.EstadoCalculado = sesService.EstadoSinAsistencia(ses, ahora)
		}
		filas = append(filas, row)
	}
	return filas, nil
}

// GET /sesiones/:id/participantes
func (ctl *AsistenciaController) Participantes(c *fiber.Ctx) error {
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
	}
	datos, falla := ctl.contextoSesion(ses)
	if falla != nil {
		return responderFalla(c, falla)
	}

	filas, err := ctl.filasRoster(ses, datos)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	desde, hasta := sesService.VentanaSesion(ses)
	return helper.JsonList(c, "OK", filas, fiber.Map{
		"ventana_inicio": desde,
		"ventana_fin":    hasta,
	})
}

// GET /sesiones/:id/asistencias
func (ctl *AsistenciaController) ListarAsistencias(c *fiber.Ctx) error {
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
	}
	var filas []asModel.AsistenciaModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("asistencia_sesion_id = ?", ses.SesionId).
		Order("asistencia_check_in_at ASC").
		Find(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", filas)
}

/* ==============================
   Reporte exportable
============================== */

var cabecerasReporte = []string{"Nombres", "Apellidos", "Código", "DNI", "Método", "Check-in", "Estado", "MinutosValidados"}

func filaExport(r *dto.ParticipanteRow) []string {
	checkIn := ""
	if r.CheckInAt != nil {
		checkIn = r.CheckInAt.Format("2006-01-02 15:04:05")
	}
	estado := r.EstadoAsistencia
	if estado == "" {
		estado = r.EstadoCalculado
	}
	return []string{
		r.Nombres, r.Apellidos, r.Codigo, r.Dni,
		r.Metodo, checkIn, estado, strconv.Itoa(r.MinutosValidados),
	}
}

// GET /sesiones/:id/reporte?formato=json|csv|xlsx
func (ctl *AsistenciaController) Reporte(c *fiber.Ctx) error {
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
	}
	datos, falla := ctl.contextoSesion(ses)
	if falla != nil {
		return responderFalla(c, falla)
	}

	filas, err := ctl.filasRoster(ses, datos)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	formato := strings.ToLower(strings.TrimSpace(c.Query("formato", "json")))
	nombre := "asistencia-" + ses.SesionFecha.Format("2006-01-02")

	switch formato {
	case "json", "":
		return helper.JsonOK(c, "OK", filas)

	case "csv":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(cabecerasReporte); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		for i := range filas {
			if err := w.Write(filaExport(&filas[i])); err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`.csv"`)
		return c.Send(buf.Bytes())

	case "xlsx":
		f := excelize.NewFile()
		defer f.Close()
		hoja := "Asistencia"
		f.SetSheetName("Sheet1", hoja)
		for col, h := range cabecerasReporte {
			celda, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(hoja, celda, h)
		}
		for i := range filas {
			for col, v := range filaExport(&filas[i]) {
				celda, _ := excelize.CoordinatesToCellName(col+1, i+2)
				f.SetCellValue(hoja, celda, v)
			}
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`.xlsx"`)
		return c.Send(buf.Bytes())
	}

	return helper.JsonError(c, fiber.StatusBadRequest, fmt.Sprintf("Formato no soportado: %s", formato))
}
