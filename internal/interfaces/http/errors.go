package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/application/usecase"
	"github.com/tu-usuario/gestion-backoffice/internal/domain"
)

// resolveError fallo al resolver la pantalla de una ruta: la clave no existe
// o el módulo no está habilitado. Lleva su estatus y código para que
// respondError sea el único punto que escribe la respuesta; el handler corta
// en cuanto el guard lo devuelve.
type resolveError struct {
	status int
	code   string
	msg    string
}

func (e *resolveError) Error() string { return e.msg }

// respondError traduce errores de dominio y de validación a respuestas HTTP.
// Los errores del backend ERP llegan envueltos en los centinelas de domain,
// así que el switch cubre también esa ruta.
func respondError(c *fiber.Ctx, err error) error {
	var rErr *resolveError
	if errors.As(err, &rErr) {
		return c.Status(rErr.status).JSON(dto.ErrorResponse{Code: rErr.code, Message: rErr.msg})
	}

	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:   "VALIDATION",
			Errors: vErr.Errors,
		})
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrSessionExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "la sesión no es válida, inicie sesión de nuevo"})
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permiso para esta operación"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el registro no existe"})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el registro entra en conflicto con el estado actual"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrBackendUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: "el backend no está disponible, intente más tarde"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
