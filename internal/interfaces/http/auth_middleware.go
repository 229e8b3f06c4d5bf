package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/authz"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/repository"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/backendapi"
	"github.com/tu-usuario/gestion-backoffice/pkg/jwt"
)

// Locals keys en Fiber, puestos por AuthMiddleware.
const (
	LocalSessionID   = "session_id"
	LocalSession     = "session"
	LocalPermissions = "permissions"
)

// AuthMiddleware valida el Bearer Token JWT, carga la sesión persistida y
// deja en c.Locals la sesión y los permisos resueltos. También inyecta las
// credenciales del backend en el user context para las llamadas salientes.
func AuthMiddleware(jwtSecret string, sessions repository.SessionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		session, err := sessions.GetByID(c.Context(), claims.SessionID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
		}
		if session == nil || session.Expired(time.Now()) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión no existe o expiró, inicie sesión de nuevo"})
		}

		set, err := authz.Parse(session.UserBlob)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_CORRUPT", Message: "la sesión es inválida, inicie sesión de nuevo"})
		}

		c.Locals(LocalSessionID, session.ID)
		c.Locals(LocalSession, session)
		c.Locals(LocalPermissions, set)
		c.SetUserContext(backendapi.WithAuth(c.UserContext(), session.ID, session.AccessToken))
		return c.Next()
	}
}

// GetSessionID devuelve el id de sesión del contexto (después del middleware de auth).
func GetSessionID(c *fiber.Ctx) string {
	v := c.Locals(LocalSessionID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetSession devuelve la sesión persistida del contexto.
func GetSession(c *fiber.Ctx) *entity.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*entity.Session)
	return s
}

// GetPermissions devuelve los permisos resueltos del contexto.
func GetPermissions(c *fiber.Ctx) authz.PermissionSet {
	v := c.Locals(LocalPermissions)
	if v == nil {
		return authz.PermissionSet{}
	}
	s, _ := v.(authz.PermissionSet)
	return s
}
