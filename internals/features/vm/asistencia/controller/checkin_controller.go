package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "univm_backend/internals/features/vm/asistencia/dto"
	asModel "univm_backend/internals/features/vm/asistencia/model"
	asService "univm_backend/internals/features/vm/asistencia/service"
	sesModel "univm_backend/internals/features/vm/sesion/model"
	sesService "univm_backend/internals/features/vm/sesion/service"
	helper "univm_backend/internals/helpers"
)

// POST /sesiones/:id/check-in/qr — check-in del propio alumno.
func (ctl *AsistenciaController) CheckInQr(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
	}

	var req dto.CheckInQrRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var tok sesModel.QrTokenModel
	err = ctl.DB.WithContext(c.Context()).
		Where("qr_token_sesion_id = ?", ses.SesionId).
		Where("qr_token_tipo = ?", sesModel.TokenTipoQr).
		Where("qr_token_token = ?", req.Token).
		Where("qr_token_activo = TRUE").
		First(&tok).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "TOKEN_INVALIDO",
			"El token no corresponde a esta sesión", nil)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if f := asService.CheckVentana(&tok, time.Now()); f != nil {
		return responderFalla(c, f)
	}
	if f := asService.CheckGeocerca(&tok, req.Lat, req.Lng); f != nil {
		return responderFalla(c, f)
	}

	datos, falla := ctl.contextoSesion(ses)
	if falla != nil {
		return responderFalla(c, falla)
	}

	exp, err := ctl.Scope.ExpedientePorUser(userId, *datos.EpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if exp == nil {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "DIFFERENT_EP_SEDE",
			"Tu expediente pertenece a otra escuela-sede", fiber.Map{"ep_sede_id": *datos.EpSedeId})
	}

	part, err := ctl.participacionActiva(datos, exp.ExpedienteId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if part == nil {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "NO_INSCRITO",
			"No estás inscrito en la actividad de esta sesión", nil)
	}

	meta := metaCliente(c)
	if req.Lat != nil {
		meta["lat"] = *req.Lat
	}
	if req.Lng != nil {
		meta["lng"] = *req.Lng
	}

	var fila *asModel.AsistenciaModel
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		tokenId := tok.QrTokenId
		partId := part.ParticipacionId
		fila, err = ctl.Svc.UpsertAsistencia(tx, asService.DatosCheckIn{
			SesionId:        ses.SesionId,
			ExpedienteId:    exp.ExpedienteId,
			ParticipacionId: &partId,
			QrTokenId:       &tokenId,
			Metodo:          asModel.MetodoQr,
			Meta:            meta,
		})
		if err != nil {
			return err
		}
		return ctl.Svc.ConsumirToken(tx, tok.QrTokenId)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCode(c, fiber.StatusCreated, "CHECKED_IN", fiber.Map{
		"asistencia":  fila,
		"ventana_fin": tok.QrTokenExpiresAt,
	})
}

// tokenManualVigente: el MANUAL más reciente de la sesión, solo si su
// ventana está abierta.
func (ctl *AsistenciaController) tokenManualVigente(sesionId uuid.UUID) (*sesModel.QrTokenModel, error) {
	var tok sesModel.QrTokenModel
	err := ctl.DB.
		Where("qr_token_sesion_id = ?", sesionId).
		Where("qr_token_tipo = ?", sesModel.TokenTipoManual).
		Where("qr_token_activo = TRUE").
		Order("qr_token_created_at DESC").
		First(&tok).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if f := asService.CheckVentana(&tok, time.Now()); f != nil {
		return nil, nil
	}
	return &tok, nil
}

// POST /sesiones/:id/check-in/manual — el staff registra por código.
func (ctl *AsistenciaController) CheckInManual(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
	}

	var req dto.CheckInManualRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	tok, err := ctl.tokenManualVigente(ses.SesionId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if tok == nil {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "VENTANA_NO_ACTIVA",
			"No hay una ventana de registro manual activa para la sesión", nil)
	}

	return ctl.checkInPorCodigo(c, ses, userId, req.Codigo, &tok.QrTokenId, false, "", true)
}

// POST /sesiones/:id/check-in/justificada — fuera de hora, con descargo.
func (ctl *AsistenciaController) CheckInJustificada(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
	}

	var req dto.CheckInJustificadaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	return ctl.checkInPorCodigo(c, ses, userId, req.Codigo, nil, true, req.Justificacion, req.Otorgar())
}

// checkInPorCodigo es el tramo común de los caminos manual y justificado.
// A diferencia del QR, aquí los minutos se acreditan en el acto: el
// registro lo atestigua el staff, no hay validación posterior.
func (ctl *AsistenciaController) checkInPorCodigo(
	c *fiber.Ctx,
	ses *sesModel.SesionModel,
	registradoPor uuid.UUID,
	codigo string,
	tokenId *uuid.UUID,
	fueraDeHora bool,
	justificacion string,
	otorgarHoras bool,
) error {
	datos, falla := ctl.contextoSesion(ses)
	if falla != nil {
		return responderFalla(c, falla)
	}

	ok, err := ctl.Scope.UserManagesEpSede(registradoPor, *datos.EpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "No gestionas esta EP-Sede")
	}

	exp, err := ctl.expedientePorCodigo(codigo, *datos.EpSedeId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if exp == nil {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "NO_ENCONTRADO",
			"No hay expediente con ese código en la escuela-sede", fiber.Map{
				"codigo":     codigo,
				"ep_sede_id": *datos.EpSedeId,
			})
	}

	part, err := ctl.participacionActiva(datos, exp.ExpedienteId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if part == nil {
		return helper.JsonFail(c, fiber.StatusUnprocessableEntity, "NO_INSCRITO",
			"El estudiante no está inscrito en la actividad de esta sesión", nil)
	}

	meta := metaCliente(c)
	meta["registrado_por"] = registradoPor.String()
	if tokenId != nil {
		meta["token_id"] = tokenId.String()
	}
	if fueraDeHora {
		meta["fuera_de_hora"] = true
		meta["justificacion"] = justificacion
	}

	minutos := sesService.MinutosSesion(ses)

	var fila *asModel.AsistenciaModel
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		partId := part.ParticipacionId
		fila, err = ctl.Svc.UpsertAsistencia(tx, asService.DatosCheckIn{
			SesionId:        ses.SesionId,
			ExpedienteId:    exp.ExpedienteId,
			ParticipacionId: &partId,
			QrTokenId:       tokenId,
			Metodo:          asModel.MetodoManual,
			Meta:            meta,
		})
		if err != nil {
			return err
		}
		if tokenId != nil {
			if err := ctl.Svc.ConsumirToken(tx, *tokenId); err != nil {
				return err
			}
		}
		if otorgarHoras && minutos > 0 {
			fila.AsistenciaMinutosValidados = minutos
			if err := tx.Save(fila).Error; err != nil {
				return err
			}
			periodoId := ctl.periodoDeSesion(datos, ses)
			_, err = ctl.Svc.UpsertRegistroHoras(tx, fila, *datos.EpSedeId, periodoId,
				ses.SesionFecha, minutos, actividadSesion(ses, fueraDeHora))
			return err
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	code := "CHECKED_IN"
	if fueraDeHora {
		code = "CHECKED_IN_JUSTIFICADA"
	}
	return helper.JsonCode(c, fiber.StatusCreated, code, fiber.Map{
		"asistencia": fila,
		"minutos":    minutos,
	})
}
