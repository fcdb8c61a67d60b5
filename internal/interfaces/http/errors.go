package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/pkg/logger"
)

// Códigos de error expuestos en {error:{code,message}}.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

const internalMessage = "An unexpected error occurred"

// respondError traduce un error de dominio a status HTTP. Lo que no es de dominio se registra
// y sale como INTERNAL_ERROR sin detalles.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse(CodeValidation, derr.Message))
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.NewErrorResponse(CodeNotFound, derr.Message))
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(CodeUnauthorized, derr.Message))
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.NewErrorResponse(CodeForbidden, derr.Message))
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("user_id", GetUserID(c)).
		Msg("error inesperado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.NewErrorResponse(CodeInternal, internalMessage))
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse(CodeValidation, "Invalid request body"))
}

// ErrorHandler reemplaza el handler por defecto de Fiber para que rutas inexistentes,
// panics recuperados y errores no manejados respeten el mismo formato.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
				code = CodeValidation
			case fiber.StatusUnauthorized:
				code = CodeUnauthorized
			case fiber.StatusForbidden:
				code = CodeForbidden
			}
			return c.Status(fe.Code).JSON(dto.NewErrorResponse(code, fe.Message))
		}
		return respondError(c, log, err)
	}
}
