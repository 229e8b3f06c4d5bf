package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tu-usuario/gestion-backoffice/internal/application/dto"
	"github.com/tu-usuario/gestion-backoffice/internal/application/pages"
	"github.com/tu-usuario/gestion-backoffice/internal/domain"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/authz"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/document"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/backendapi"
	"github.com/tu-usuario/gestion-backoffice/pkg/logger"
)

// DocumentPDFGenerator genera la representación gráfica local de un
// documento de venta. Lo implementa el adaptador maroto.
type DocumentPDFGenerator interface {
	Generate(title string, doc entity.Record, items []document.LineItem, total decimal.Decimal) ([]byte, error)
}

// DocumentUseCase pantallas de composición de documentos de venta: el
// documento padre con sus líneas, los totales calculados en servidor y las
// acciones propias de cada tipo.
type DocumentUseCase struct {
	client *backendapi.Client
	pdf    DocumentPDFGenerator
	log    *logger.Logger
}

// NewDocumentUseCase construye el caso de uso de documentos.
func NewDocumentUseCase(client *backendapi.Client, pdf DocumentPDFGenerator, log *logger.Logger) *DocumentUseCase {
	return &DocumentUseCase{client: client, pdf: pdf, log: log}
}

// FormData carga en paralelo las colecciones relacionadas que necesita la
// pantalla al montar (artículos, clientes, almacenes) y espera a todas.
func (uc *DocumentUseCase) FormData(ctx context.Context) (*dto.DocumentFormData, error) {
	var out dto.DocumentFormData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := uc.client.Resource("/articulos/").GetAll(gctx, nil)
		out.Articulos = recs
		return err
	})
	g.Go(func() error {
		recs, err := uc.client.Resource("/contactos/").GetAll(gctx, nil)
		out.Clientes = recs
		return err
	})
	g.Go(func() error {
		recs, err := uc.client.Resource("/almacenes/").GetAll(gctx, nil)
		out.Almacenes = recs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Totals calcula subtotales y total de un juego de líneas para
// previsualización, con dos decimales fijos solo al presentar.
func (uc *DocumentUseCase) Totals(in []dto.LineItemRequest) (*dto.TotalsResponse, error) {
	items := toLineItems(in)
	if err := document.ValidateItems(items); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	subs := make([]string, 0, len(items))
	for _, li := range items {
		subs = append(subs, li.Subtotal().StringFixed(2))
	}
	return &dto.TotalsResponse{
		Subtotales: subs,
		Total:      document.Total(items).StringFixed(2),
	}, nil
}

// Create valida cabecera y líneas y envía el documento completo al backend
// en una sola llamada.
func (uc *DocumentUseCase) Create(ctx context.Context, page pages.DocumentPage, set authz.PermissionSet, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if !allowed(set, page.Perms.Add) {
		return nil, domain.ErrForbidden
	}
	if errs := form.ValidateAll(page.Fields, in.Cabecera); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	items := toLineItems(in.Items)
	if err := document.ValidateItems(items); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	total := document.Total(items)
	payload := form.Assemble(page.Fields, in.Cabecera)
	payload["items"] = in.Items
	payload["total"] = total

	rec, err := uc.client.Resource(page.ResourcePath).Create(ctx, payload)
	if err != nil {
		uc.log.Error().Err(err).Str("documento", page.Key).Msg("crear documento")
		return nil, err
	}
	return &dto.DocumentResponse{Record: rec, Total: total.StringFixed(2)}, nil
}

// UpdateHeader actualiza solo la cabecera del documento.
func (uc *DocumentUseCase) UpdateHeader(ctx context.Context, page pages.DocumentPage, set authz.PermissionSet, id string, cabecera map[string]any) (entity.Record, error) {
	if !allowed(set, page.Perms.Edit) {
		return nil, domain.ErrForbidden
	}
	if errs := form.ValidateAll(page.Fields, cabecera); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return uc.client.Resource(page.ResourcePath).Update(ctx, id, form.Assemble(page.Fields, cabecera))
}

// ReplaceItems sustituye el juego completo de líneas en una sola llamada
// atómica del backend: no existe ventana en la que las líneas estén borradas
// pero aún no recreadas.
func (uc *DocumentUseCase) ReplaceItems(ctx context.Context, page pages.DocumentPage, set authz.PermissionSet, id string, in dto.ReplaceItemsRequest) (*dto.DocumentResponse, error) {
	if !allowed(set, page.Perms.Edit) {
		return nil, domain.ErrForbidden
	}
	items := toLineItems(in.Items)
	if err := document.ValidateItems(items); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	total := document.Total(items)
	payload := map[string]any{"items": in.Items, "total": total}
	rec, err := uc.client.Resource(page.ResourcePath).Replace(ctx, id, "items", payload)
	if err != nil {
		uc.log.Error().Err(err).Str("documento", page.Key).Str("id", id).Msg("reemplazar líneas")
		return nil, err
	}
	return &dto.DocumentResponse{Record: rec, Total: total.StringFixed(2)}, nil
}

// Action invoca una acción del documento (cancelar, marcar entregado, crear
// factura desde cotización, ...). Solo las declaradas por la pantalla.
func (uc *DocumentUseCase) Action(ctx context.Context, page pages.DocumentPage, set authz.PermissionSet, id, action string) (entity.Record, error) {
	if !allowed(set, page.Perms.Edit) {
		return nil, domain.ErrForbidden
	}
	supported := false
	for _, a := range page.Actions {
		if a == action {
			supported = true
			break
		}
	}
	if !supported {
		return nil, domain.ErrInvalidInput
	}
	return uc.client.Resource(page.ResourcePath).Action(ctx, id, action, nil)
}

// PDF devuelve la representación del documento. Las facturas usan el PDF
// oficial que genera el backend (documento fiscal); el resto se renderiza
// localmente con maroto.
func (uc *DocumentUseCase) PDF(ctx context.Context, page pages.DocumentPage, set authz.PermissionSet, id string) ([]byte, string, error) {
	if !allowed(set, page.Perms.View) {
		return nil, "", domain.ErrForbidden
	}

	if page.Key == "facturas" {
		blob, contentType, err := uc.client.Resource(page.ResourcePath).Blob(ctx, id, "pdf")
		if err != nil {
			return nil, "", err
		}
		if contentType == "" {
			contentType = "application/pdf"
		}
		return blob, contentType, nil
	}

	rec, err := uc.client.Resource(page.ResourcePath).GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	items := itemsFromRecord(rec)
	pdfBytes, err := uc.pdf.Generate(page.Title, rec, items, document.Total(items))
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF %s/%s: %w", page.Key, id, err)
	}
	return pdfBytes, "application/pdf", nil
}

func toLineItems(in []dto.LineItemRequest) []document.LineItem {
	items := make([]document.LineItem, 0, len(in))
	for _, r := range in {
		items = append(items, r.ToLineItem())
	}
	return items
}

// itemsFromRecord reconstruye las líneas desde el campo items del registro
// tal como lo serializa el backend.
func itemsFromRecord(rec entity.Record) []document.LineItem {
	raw, _ := rec["items"].([]any)
	items := make([]document.LineItem, 0, len(raw))
	for _, it := range raw {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		desc, _ := m["descripcion"].(string)
		items = append(items, document.LineItem{
			ArticuloID:     entity.CoerceID(m["articulo"]),
			Descripcion:    desc,
			Cantidad:       toDec(m["cantidad"]),
			PrecioUnitario: toDec(m["precio_unitario"]),
			Descuento:      toDec(m["descuento"]),
		})
	}
	return items
}

func toDec(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case string:
		d, err := decimal.NewFromString(x)
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

// allowed un permiso vacío no restringe; admin y superadmin pasan siempre.
func allowed(set authz.PermissionSet, perm string) bool {
	if perm == "" {
		return true
	}
	return set.IsAdmin() || set.HasPermission(perm)
}
