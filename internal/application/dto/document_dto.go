package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/document"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// LineItemRequest una línea tal como llega del formulario de composición.
type LineItemRequest struct {
	Articulo       string          `json:"articulo"`
	Descripcion    string          `json:"descripcion,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
}

// ToLineItem convierte al tipo de dominio.
func (r LineItemRequest) ToLineItem() document.LineItem {
	return document.LineItem{
		ArticuloID:     r.Articulo,
		Descripcion:    r.Descripcion,
		Cantidad:       r.Cantidad,
		PrecioUnitario: r.PrecioUnitario,
		Descuento:      r.Descuento,
	}
}

// CreateDocumentRequest documento padre más todas sus líneas, enviados al
// backend en una sola llamada.
type CreateDocumentRequest struct {
	Cabecera map[string]any    `json:"cabecera"`
	Items    []LineItemRequest `json:"items"`
}

// ReplaceItemsRequest sustitución atómica del juego completo de líneas.
type ReplaceItemsRequest struct {
	Items []LineItemRequest `json:"items"`
}

// DocumentResponse documento persistido con los totales calculados.
type DocumentResponse struct {
	Record entity.Record `json:"record"`
	Total  string        `json:"total"` // dos decimales fijos
}

// DocumentFormData colecciones relacionadas cargadas en paralelo al montar
// la pantalla de composición.
type DocumentFormData struct {
	Articulos []entity.Record `json:"articulos"`
	Clientes  []entity.Record `json:"clientes"`
	Almacenes []entity.Record `json:"almacenes"`
}

// TotalsResponse total calculado en el servidor para previsualización.
type TotalsResponse struct {
	Subtotales []string `json:"subtotales"`
	Total      string   `json:"total"`
}
