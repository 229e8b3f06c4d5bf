package usecase

import (
	"context"

	"github.com/tu-usuario/gestion-backoffice/internal/application/pages"
	"github.com/tu-usuario/gestion-backoffice/internal/domain"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/authz"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
	"github.com/tu-usuario/gestion-backoffice/pkg/logger"
)

// TableExporter vuelca una vista de tabla computada a un formato de hoja de
// cálculo. Lo implementa el adaptador excelize.
type TableExporter interface {
	Export(title string, cols []table.Column, view table.View) ([]byte, error)
}

// ExportUseCase exportación de pantallas: la misma vista computada que ve el
// usuario (filtro y orden aplicados, sin paginar) volcada a un archivo.
type ExportUseCase struct {
	pagesUC  *PageUseCase
	exporter TableExporter
	log      *logger.Logger
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(pagesUC *PageUseCase, exporter TableExporter, log *logger.Logger) *ExportUseCase {
	return &ExportUseCase{pagesUC: pagesUC, exporter: exporter, log: log}
}

// Excel exporta la pantalla con el filtro y orden vigentes. La paginación no
// aplica: se exportan todas las filas filtradas.
func (uc *ExportUseCase) Excel(ctx context.Context, sessionID string, page pages.Page, set authz.PermissionSet, q table.Query) ([]byte, error) {
	if !allowed(set, page.Perms.View) {
		return nil, domain.ErrForbidden
	}
	data, err := uc.pagesUC.Data(ctx, sessionID, page)
	if err != nil {
		return nil, err
	}

	q.Page = 1
	q.PageSize = len(data)
	if q.PageSize == 0 {
		q.PageSize = 1
	}
	view := table.Compute(data, page.Columns, page.SearchFields, q, table.NewFormatter(uc.pagesUC.Locale()))

	out, err := uc.exporter.Export(page.Title, page.Columns, view)
	if err != nil {
		uc.log.Error().Err(err).Str("page", page.Key).Msg("exportar a Excel")
		return nil, err
	}
	return out, nil
}
