// Package pdf genera la representación gráfica local de un documento de
// venta (cotización, pedido, albarán, ticket) usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento  │  N° + Fecha                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Dto% | Subtotal       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: TOTAL                                             │
//	└─────────────────────────────────────────────────────────────┘
//
// Las facturas no pasan por aquí: su PDF oficial lo emite el backend y el
// servicio solo lo reenvía.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/document"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoDocumentGenerator implementa usecase.DocumentPDFGenerator usando Maroto v2.
type MarotoDocumentGenerator struct{}

// NewMarotoDocumentGenerator construye el generador.
func NewMarotoDocumentGenerator() *MarotoDocumentGenerator { return &MarotoDocumentGenerator{} }

// Generate genera el PDF del documento y devuelve sus bytes.
func (g *MarotoDocumentGenerator) Generate(
	title string,
	doc entity.Record,
	items []document.LineItem,
	total decimal.Decimal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(total))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de documento (izq) y número + fecha (der).
func headerRow(title string, doc entity.Record) core.Row {
	numero := fieldText(doc, "numero", "codigo")
	fecha := fieldText(doc, "fecha", "fecha_emision")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("N° "+nonEmpty(numero, doc.ID()), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 4,
			}),
			text.New("Fecha: "+nonEmpty(fecha, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del cliente tal como vienen en la cabecera del documento.
func clienteRow(doc entity.Record) core.Row {
	nombre := nestedName(doc.Get("cliente"))
	if nombre == "" {
		nombre = fieldText(doc, "cliente_nombre")
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(nombre, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(fieldText(doc, "cliente_email", "email"), "—"),
				nonEmpty(fieldText(doc, "cliente_telefono", "telefono"), "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Dto.%", 1, align.Center),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por línea del documento.
func tableItemRows(items []document.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Cantidad.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.PrecioUnitario.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.Descuento.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				it.Subtotal().StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de total alineado a la derecha.
func totalsRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New(total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// fieldText devuelve el primer campo string no vacío de la lista de claves.
func fieldText(doc entity.Record, keys ...string) string {
	for _, k := range keys {
		if s, ok := doc.Get(k).(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// nestedName extrae el nombre de un objeto anidado {"id": ..., "nombre": ...}.
func nestedName(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	for _, k := range []string{"nombre", "name", "razon_social"} {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
