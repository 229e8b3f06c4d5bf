package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
	infraexcel "github.com/tu-usuario/gestion-backoffice/internal/infrastructure/excel"
)

// Caso 1: el libro lleva la cabecera y las celdas ya formateadas, en el
// orden de la vista.
func TestExport_CabeceraYFilas(t *testing.T) {
	cols := []table.Column{
		{Key: "nombre", Label: "Nombre", Type: table.TypeText},
		{Key: "saldo", Label: "Saldo", Type: table.TypeCurrency},
	}
	data := []entity.Record{
		{"id": "1", "nombre": "Ana", "saldo": float64(10.5)},
		{"id": "2", "nombre": "Luis", "saldo": float64(3)},
	}
	view := table.Compute(data, cols, nil, table.Query{Page: 1, PageSize: 10}, table.NewFormatter("es"))

	out, err := infraexcel.NewExporter().Export("Contactos", cols, view)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	require.Contains(t, f.GetSheetList(), "Contactos")

	get := func(cell string) string {
		v, err := f.GetCellValue("Contactos", cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Nombre", get("A1"))
	assert.Equal(t, "Saldo", get("B1"))
	assert.Equal(t, "Ana", get("A2"))
	assert.Equal(t, "10.50", get("B2"), "las celdas salen formateadas igual que en pantalla")
	assert.Equal(t, "Luis", get("A3"))
	assert.Equal(t, "3.00", get("B3"))
}

// Caso 2: un título más largo que el límite de Excel se recorta a 31 caracteres.
func TestExport_TituloLargo(t *testing.T) {
	cols := []table.Column{{Key: "x", Label: "X"}}
	view := table.Compute(nil, cols, nil, table.Query{PageSize: 10}, table.NewFormatter("es"))

	out, err := infraexcel.NewExporter().Export("Una pantalla con un título larguísimo de verdad", cols, view)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Len(t, []rune(sheets[0]), 31)
}
