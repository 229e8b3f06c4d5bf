package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/application/pages"
	"github.com/tu-usuario/gestion-backoffice/internal/application/usecase"
)

// DocumentHandler maneja las pantallas de composición de documentos de venta:
// cabecera más líneas en una sola operación, acciones del tipo y PDF.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// docPageOr404 resuelve la pantalla de documentos y verifica el módulo. El
// resolveError devuelto debe retornarse vía respondError sin seguir.
func docPageOr404(c *fiber.Ctx) (pages.DocumentPage, error) {
	key := c.Params("page")
	page, ok := pages.GetDocument(key)
	if !ok {
		return pages.DocumentPage{}, &resolveError{fiber.StatusNotFound, "UNKNOWN_PAGE", "la pantalla de documentos '" + key + "' no existe"}
	}
	if !GetPermissions(c).CanAccessModule(page.Module) {
		return pages.DocumentPage{}, &resolveError{fiber.StatusForbidden, "MODULE_FORBIDDEN", "el módulo '" + page.Module + "' no está habilitado para este usuario"}
	}
	return page, nil
}

// FormData godoc
// @Summary      Colecciones relacionadas para el formulario de composición
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        page  path  string  true  "Clave de la pantalla de documentos"
// @Success      200  {object}  dto.DocumentFormData
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/documentos/{page}/form-data [get]
func (h *DocumentHandler) FormData(c *fiber.Ctx) error {
	if _, err := docPageOr404(c); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.FormData(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Totals godoc
// @Summary      Previsualizar totales de un juego de líneas
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        page  path  string                   true  "Clave de la pantalla de documentos"
// @Param        body  body  dto.ReplaceItemsRequest  true  "Líneas"
// @Success      200  {object}  dto.TotalsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documentos/{page}/totales [post]
func (h *DocumentHandler) Totals(c *fiber.Ctx) error {
	if _, err := docPageOr404(c); err != nil {
		return respondError(c, err)
	}
	var in dto.ReplaceItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Totals(in.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear documento con sus líneas en una sola operación
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        page  path  string                     true  "Clave de la pantalla de documentos"
// @Param        body  body  dto.CreateDocumentRequest  true  "Cabecera y líneas"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documentos/{page} [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	page, err := docPageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), page, GetPermissions(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateHeader godoc
// @Summary      Actualizar la cabecera de un documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        page  path  string          true  "Clave de la pantalla de documentos"
// @Param        id    path  string          true  "ID del documento"
// @Param        body  body  map[string]any  true  "Campos de cabecera"
// @Success      200  {object}  entity.Record
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{page}/{id} [put]
func (h *DocumentHandler) UpdateHeader(c *fiber.Ctx) error {
	page, err := docPageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	var cabecera map[string]any
	if err := c.BodyParser(&cabecera); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.UpdateHeader(c.UserContext(), page, GetPermissions(c), c.Params("id"), cabecera)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// ReplaceItems godoc
// @Summary      Sustituir el juego completo de líneas de un documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        page  path  string                   true  "Clave de la pantalla de documentos"
// @Param        id    path  string                   true  "ID del documento"
// @Param        body  body  dto.ReplaceItemsRequest  true  "Líneas nuevas"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documentos/{page}/{id}/items [put]
func (h *DocumentHandler) ReplaceItems(c *fiber.Ctx) error {
	page, err := docPageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReplaceItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReplaceItems(c.UserContext(), page, GetPermissions(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Action godoc
// @Summary      Invocar una acción del documento (ej. cancelar, crear_factura)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        page    path  string  true  "Clave de la pantalla de documentos"
// @Param        id      path  string  true  "ID del documento"
// @Param        action  path  string  true  "Nombre de la acción"
// @Success      200  {object}  entity.Record
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/documentos/{page}/{id}/actions/{action} [post]
func (h *DocumentHandler) Action(c *fiber.Ctx) error {
	page, err := docPageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.uc.Action(c.UserContext(), page, GetPermissions(c), c.Params("id"), c.Params("action"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// PDF godoc
// @Summary      Descargar el PDF del documento
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        page  path  string  true  "Clave de la pantalla de documentos"
// @Param        id    path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{page}/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	page, err := docPageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	id := c.Params("id")
	data, contentType, err := h.uc.PDF(c.UserContext(), page, GetPermissions(c), id)
	if err != nil {
		return respondError(c, err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s-%s.pdf", page.Key, id))
	return c.Send(data)
}
