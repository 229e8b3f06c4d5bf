package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/application/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler descarga de pantallas como hoja de cálculo.
type ExportHandler struct {
	uc *usecase.ExportUseCase
}

// NewExportHandler construye el handler de exportación.
func NewExportHandler(uc *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Excel godoc
// @Summary      Exportar la pantalla a XLSX con el filtro y orden vigentes
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        page    path   string  true   "Clave de la pantalla"
// @Param        search  query  string  false  "Texto de búsqueda"
// @Param        sort    query  string  false  "Columna de orden"
// @Param        desc    query  bool    false  "Orden descendente"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pages/{page}/export/excel [get]
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	page, err := pageOr404(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.uc.Excel(c.UserContext(), GetSessionID(c), page, GetPermissions(c), queryFrom(c, page))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.xlsx", page.Key))
	return c.Send(data)
}
