package http

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/application/pages"
	"github.com/tu-usuario/gestion-backoffice/internal/application/usecase"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

// PageHandler maneja las pantallas CRUD genéricas: vista de tabla, esquema de
// formulario y mutaciones. La pantalla concreta llega como parámetro de ruta
// y se resuelve contra el registro de pantallas.
type PageHandler struct {
	uc *usecase.PageUseCase
}

// NewPageHandler construye el handler de pantallas.
func NewPageHandler(uc *usecase.PageUseCase) *PageHandler {
	return &PageHandler{uc: uc}
}

// resolvePage busca la pantalla en ambos registros. Las pantallas de
// documentos también listan con el motor de tabla genérico.
func resolvePage(key string) (pages.Page, bool) {
	if p, ok := pages.Get(key); ok {
		return p, true
	}
	if d, ok := pages.GetDocument(key); ok {
		return d.Page, true
	}
	return pages.Page{}, false
}

// pageOr404 resuelve la pantalla y verifica el acceso al módulo. En caso de
// fallo devuelve un resolveError: el handler debe retornarlo vía
// respondError SIN seguir ejecutando, para que una clave desconocida o un
// módulo vedado jamás lleguen al backend.
func pageOr404(c *fiber.Ctx) (pages.Page, error) {
	key := c.Params("page")
	page, ok := resolvePage(key)
	if !ok {
		return pages.Page{}, &resolveError{fiber.StatusNotFound, "UNKNOWN_PAGE", "la pantalla '" + key + "' no existe"}
	}
	if !GetPermissions(c).CanAccessModule(page.Module) {
		return pages.Page{}, &resolveError{fiber.StatusForbidden, "MODULE_FORBIDDEN", "el módulo '" + page.Module + "' no está habilitado para este usuario"}
	}
	return page, nil
}

// queryFrom arma la consulta de tabla desde los query params.
func queryFrom(c *fiber.Ctx, page pages.Page) table.Query {
	return table.Query{
		Search:   c.Query("search"),
		SortKey:  c.Query("sort"),
		SortDesc: c.QueryBool("desc", false),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", page.PageSize),
	}
}

// Nav godoc
// @Summary      Pantallas visibles para el usuario de la sesión
// @Tags         pages
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NavEntry
// @Router       /api/pages [get]
func (h *PageHandler) Nav(c *fiber.Ctx) error {
	set := GetPermissions(c)
	out := make([]dto.NavEntry, 0)
	for _, p := range pages.All() {
		if set.CanAccessModule(p.Module) {
			out = append(out, dto.NavEntry{Key: p.Key, Title: p.Title, Module: p.Module, Kind: "crud", ReadOnly: p.ReadOnly})
		}
	}
	for _, d := range pages.AllDocuments() {
		if set.CanAccessModule(d.Module) {
			out = append(out, dto.NavEntry{Key: d.Key, Title: d.Title, Module: d.Module, Kind: "documento"})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Module != out[j].Module {
			return out[i].Module < out[j].Module
		}
		return out[i].Key < out[j].Key
	})
	return c.JSON(out)
}

// View godoc
// @Summary      Vista de tabla de una pantalla
// @Tags         pages
// @Security     Bearer
// @Produce      json
// @Param        page       path   string  true   "Clave de la pantalla"
// @Param        search     query  string  false  "Texto de búsqueda"
// @Param        sort       query  string  false  "Columna de orden"
// @Param        desc       query  bool    false  "Orden descendente"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        page_size  query  int     false  "Filas por página"
// @Param        reload     query  bool    false  "Forzar recarga desde el backend"
// @Success      200  {object}  dto.TableViewResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pages/{page} [get]
func (h *PageHandler) View(c *fiber.Ctx) error {
	page, err := pageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.View(c.UserContext(), GetSessionID(c), page, GetPermissions(c), queryFrom(c, page), c.QueryBool("reload", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FormSchema godoc
// @Summary      Formulario de una pantalla para un modo del modal
// @Tags         pages
// @Security     Bearer
// @Produce      json
// @Param        page  path   string  true   "Clave de la pantalla"
// @Param        mode  query  string  true   "create, edit o view"
// @Param        id    query  string  false  "ID del registro (edit y view)"
// @Success      200  {object}  dto.FormSchemaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pages/{page}/form [get]
func (h *PageHandler) FormSchema(c *fiber.Ctx) error {
	page, err := pageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.FormSchema(c.UserContext(), GetSessionID(c), page, c.Query("mode", "create"), c.Query("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear un registro
// @Tags         pages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        page  path  string          true  "Clave de la pantalla"
// @Param        body  body  map[string]any  true  "Valores del formulario"
// @Success      201  {object}  entity.Record
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pages/{page} [post]
func (h *PageHandler) Create(c *fiber.Ctx) error {
	page, err := crudPageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	var values map[string]any
	if err := c.BodyParser(&values); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Create(c.UserContext(), GetSessionID(c), page, GetPermissions(c), values)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Update godoc
// @Summary      Actualizar un registro
// @Tags         pages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        page  path  string          true  "Clave de la pantalla"
// @Param        id    path  string          true  "ID del registro"
// @Param        body  body  map[string]any  true  "Valores del formulario"
// @Success      200  {object}  entity.Record
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pages/{page}/{id} [put]
func (h *PageHandler) Update(c *fiber.Ctx) error {
	page, err := crudPageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	var values map[string]any
	if err := c.BodyParser(&values); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Update(c.UserContext(), GetSessionID(c), page, GetPermissions(c), c.Params("id"), values)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// Delete godoc
// @Summary      Borrar un registro (con confirmación)
// @Tags         pages
// @Security     Bearer
// @Produce      json
// @Param        page     path   string  true   "Clave de la pantalla"
// @Param        id       path   string  true   "ID del registro"
// @Param        confirm  query  bool    false  "true para ejecutar el borrado"
// @Success      200  {object}  dto.DeleteConfirmation  "Sin confirm: solo la pregunta"
// @Success      204  "Borrado ejecutado"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pages/{page}/{id} [delete]
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	page, err := pageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	id := c.Params("id")

	// Primer paso: sin confirm=true nunca se borra, solo se devuelve la
	// pregunta y el path del segundo paso.
	if !c.QueryBool("confirm", false) {
		return c.JSON(dto.DeleteConfirmation{
			RecordID: id,
			Message:  fmt.Sprintf("¿Seguro que desea eliminar este registro de %s?", page.Title),
			Confirm:  c.Path() + "?confirm=true",
		})
	}

	if err := h.uc.Delete(c.UserContext(), GetSessionID(c), page, GetPermissions(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Action godoc
// @Summary      Invocar una acción del registro
// @Tags         pages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        page    path  string  true  "Clave de la pantalla"
// @Param        id      path  string  true  "ID del registro"
// @Param        action  path  string  true  "Nombre de la acción"
// @Success      200  {object}  entity.Record
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pages/{page}/{id}/actions/{action} [post]
func (h *PageHandler) Action(c *fiber.Ctx) error {
	page, err := crudPageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	var payload map[string]any
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	rec, err := h.uc.Action(c.UserContext(), page, GetPermissions(c), c.Params("id"), c.Params("action"), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// crudPageOr404 como pageOr404 pero solo pantallas CRUD: las mutaciones de
// documentos pasan por sus propias rutas, que validan las líneas.
func crudPageOr404(c *fiber.Ctx) (pages.Page, error) {
	key := c.Params("page")
	page, ok := pages.Get(key)
	if !ok {
		if _, isDoc := pages.GetDocument(key); isDoc {
			return pages.Page{}, &resolveError{fiber.StatusBadRequest, "DOCUMENT_PAGE", "la pantalla '" + key + "' se opera en /api/documentos/" + key}
		}
		return pages.Page{}, &resolveError{fiber.StatusNotFound, "UNKNOWN_PAGE", "la pantalla '" + key + "' no existe"}
	}
	if !GetPermissions(c).CanAccessModule(page.Module) {
		return pages.Page{}, &resolveError{fiber.StatusForbidden, "MODULE_FORBIDDEN", "el módulo '" + page.Module + "' no está habilitado para este usuario"}
	}
	return page, nil
}
