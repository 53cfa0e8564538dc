package controller

import (
	"github.com/gofiber/fiber/v2"

	dto "univm_backend/internals/features/vm/asistencia/dto"
	helper "univm_backend/internals/helpers"
)

// POST /sesiones/:id/tokens/qr
// Emite el QR de la sesión; vigencia de media hora desde ahora.
func (ctl *AsistenciaController) GenerarQr(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
	}

	var req dto.GenerarTokenQrRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	// geocerca a medias no sirve de nada
	if (req.Lat == nil) != (req.Lng == nil) || (req.Lat != nil) != (req.RadioM != nil) {
		return helper.JsonError(c, fiber.StatusBadRequest, "La geocerca requiere lat, lng y radio_m juntos")
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

	tok, err := ctl.Svc.GenerarTokenQr(ses.SesionId, userId, req.MaxUsos, req.Lat, req.Lng, req.RadioM)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Token QR emitido", tok)
}

// POST /sesiones/:id/tokens/manual
// Habilita el registro manual; la ventana se alinea a la de la sesión.
func (ctl *AsistenciaController) ActivarManual(c *fiber.Ctx) error {
	userId, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	ses, ferr := ctl.cargarSesion(c)
	if ses == nil {
		return ferr
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

	tok, err := ctl.Svc.GenerarTokenManual(ses, userId)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Registro manual habilitado", tok)
}
