package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reglas de formateo de celdas
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: nulo o ausente → em-dash.
func TestCell_NuloYAusente(t *testing.T) {
	f := table.NewFormatter("es")
	col := table.Column{Key: "telefono", Type: table.TypeText}

	assert.Equal(t, "—", f.Cell(col, entity.Record{"telefono": nil}))
	assert.Equal(t, "—", f.Cell(col, entity.Record{}))
}

// Caso 2: objeto anidado → su campo de nombre, probando nombre/name/titulo.
func TestCell_ObjetoAnidado(t *testing.T) {
	f := table.NewFormatter("es")
	col := table.Column{Key: "cliente", Type: table.TypeText}

	assert.Equal(t, "Acme SA", f.Cell(col, entity.Record{
		"cliente": map[string]any{"id": float64(3), "nombre": "Acme SA"},
	}))
	assert.Equal(t, "Beta Inc", f.Cell(col, entity.Record{
		"cliente": map[string]any{"name": "Beta Inc"},
	}))
	assert.Equal(t, "—", f.Cell(col, entity.Record{
		"cliente": map[string]any{"id": float64(3)},
	}), "objeto sin nombre conocido cae al em-dash")
}

// Caso 3: lista → longitud con sufijo según idioma.
func TestCell_ListaConSufijo(t *testing.T) {
	col := table.Column{Key: "items", Type: table.TypeText}
	rec := entity.Record{"items": []any{1, 2, 3}}

	assert.Equal(t, "3 elementos", table.NewFormatter("es").Cell(col, rec))
	assert.Equal(t, "3 items", table.NewFormatter("en").Cell(col, rec))
}

// Caso 4: booleano → Sí/No en español, Yes/No en inglés.
func TestCell_Booleano(t *testing.T) {
	col := table.Column{Key: "activo", Type: table.TypeBoolean}

	assert.Equal(t, "Sí", table.NewFormatter("es").Cell(col, entity.Record{"activo": true}))
	assert.Equal(t, "No", table.NewFormatter("es").Cell(col, entity.Record{"activo": false}))
	assert.Equal(t, "Yes", table.NewFormatter("en-US").Cell(col, entity.Record{"activo": true}))
}

// Caso 5: fechas ISO → formato local; un string no parseable queda tal cual.
func TestCell_Fecha(t *testing.T) {
	col := table.Column{Key: "fecha", Type: table.TypeDate}

	assert.Equal(t, "15/03/2026", table.NewFormatter("es").Cell(col, entity.Record{"fecha": "2026-03-15"}))
	assert.Equal(t, "03/15/2026", table.NewFormatter("en").Cell(col, entity.Record{"fecha": "2026-03-15"}))
	assert.Equal(t, "15/03/2026", table.NewFormatter("es").Cell(col, entity.Record{"fecha": "2026-03-15T10:30:00Z"}))
	assert.Equal(t, "no-es-fecha", table.NewFormatter("es").Cell(col, entity.Record{"fecha": "no-es-fecha"}))
}

// Caso 6: moneda → dos decimales fijos, venga como número o como string.
func TestCell_Moneda(t *testing.T) {
	f := table.NewFormatter("es")
	col := table.Column{Key: "total", Type: table.TypeCurrency}

	assert.Equal(t, "1234.50", f.Cell(col, entity.Record{"total": float64(1234.5)}))
	assert.Equal(t, "99.00", f.Cell(col, entity.Record{"total": "99"}))
	assert.Equal(t, "0.10", f.Cell(col, entity.Record{"total": "0.1"}))
}

// Caso 7: Render propio de la columna gana sobre las reglas por defecto.
func TestCell_RenderPropioGana(t *testing.T) {
	f := table.NewFormatter("es")
	col := table.Column{
		Key:  "estado",
		Type: table.TypeText,
		Render: func(v any, rec entity.Record) string {
			return "[" + v.(string) + "]"
		},
	}

	assert.Equal(t, "[pendiente]", f.Cell(col, entity.Record{"estado": "pendiente"}))
}

// Caso 8: un locale desconocido cae al español.
func TestNewFormatter_LocaleDesconocidoCaeAEspanol(t *testing.T) {
	col := table.Column{Key: "activo", Type: table.TypeBoolean}

	assert.Equal(t, "Sí", table.NewFormatter("xx-YY").Cell(col, entity.Record{"activo": true}))
}
