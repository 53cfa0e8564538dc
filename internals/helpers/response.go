// file: internals/helpers/response.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   JSON responses (success)
=================================*/

// JsonOK: respuesta genérica 200
func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":      true,
		"message": message,
		"data":    data,
	})
}

// JsonCreated: respuesta 201 (POST)
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":      true,
		"message": message,
		"data":    data,
	})
}

// JsonCode: éxito con código de negocio (CHECKED_IN, ENROLLED, ...)
func JsonCode(c *fiber.Ctx, status int, code string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"ok":   true,
		"code": code,
		"data": data,
	})
}

// JsonList: listado con meta opcional
func JsonList(c *fiber.Ctx, code string, data any, meta any) error {
	body := fiber.Map{
		"ok":   true,
		"data": data,
	}
	if code != "" {
		body["code"] = code
	}
	if meta != nil {
		body["meta"] = meta
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

/* ===============================
   JSON responses (error)
=================================*/

// JsonError: error genérico sin código de negocio
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	return c.Status(status).JSON(fiber.Map{
		"ok":      false,
		"message": message,
	})
}

// JsonFail: fallo de precondición con código de negocio + metadata estructurada.
// El front decide el mensaje final a partir de code + meta.
func JsonFail(c *fiber.Ctx, status int, code, message string, meta fiber.Map) error {
	if meta == nil {
		meta = fiber.Map{}
	}
	return c.Status(status).JSON(fiber.Map{
		"ok":      false,
		"code":    code,
		"message": message,
		"meta":    meta,
	})
}

// ValidationError: errores de validator.v10 (422)
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}

	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"ok":      false,
		"message": "Validación fallida",
		"errors":  errorsMap,
	})
}
