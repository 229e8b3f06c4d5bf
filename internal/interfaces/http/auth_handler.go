package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/application/auth"
	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/application/usecase"
)

// AuthHandler maneja login, logout, refresh y la identidad de la sesión.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	pagesUC *usecase.PageUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, pagesUC *usecase.PageUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, pagesUC: pagesUC}
}

// Login godoc
// @Summary      Iniciar sesión contra el backend ERP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      204  "Sin contenido"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)
	if err := h.uc.Logout(c.UserContext(), sessionID); err != nil {
		return respondError(c, err)
	}
	// Las colecciones en memoria de la sesión dejan de recibir parches.
	h.pagesUC.CloseSession(sessionID)
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh godoc
// @Summary      Renovar los tokens del backend para esta sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      204  "Sin contenido"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	if err := h.uc.Refresh(c.UserContext(), GetSessionID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario y permisos de la sesión vigente
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
