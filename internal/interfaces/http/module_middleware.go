package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
)

// RequireModule devuelve un middleware Fiber que verifica si el usuario de la
// sesión tiene acceso al módulo de navegación. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalPermissions).
//
// Comportamiento:
//   - 403 Forbidden → el módulo no está en la lista de módulos accesibles.
//   - El centinela "all" en la lista habilita todos los módulos.
func RequireModule(moduleKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		set := GetPermissions(c)
		if !set.CanAccessModule(moduleKey) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: "el módulo '" + moduleKey + "' no está habilitado para este usuario",
			})
		}
		return c.Next()
	}
}
