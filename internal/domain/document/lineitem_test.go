package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/document"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Caso 1: subtotal = cantidad × precio × (1 − descuento/100).
func TestLineItem_Subtotal(t *testing.T) {
	li := document.LineItem{
		ArticuloID:     "A1",
		Cantidad:       dec("3"),
		PrecioUnitario: dec("10"),
		Descuento:      dec("25"),
	}

	assert.Equal(t, "22.50", li.Subtotal().StringFixed(2), "3 × 10 × 0.75")
}

// Caso 2: sin descuento el factor es 1.
func TestLineItem_SubtotalSinDescuento(t *testing.T) {
	li := document.LineItem{ArticuloID: "A1", Cantidad: dec("2"), PrecioUnitario: dec("19.99")}

	assert.Equal(t, "39.98", li.Subtotal().StringFixed(2))
}

// Caso 3: la aritmética decimal no acumula error binario (0.1 × 3 = 0.3 exacto).
func TestLineItem_SinErrorBinario(t *testing.T) {
	li := document.LineItem{ArticuloID: "A1", Cantidad: dec("3"), PrecioUnitario: dec("0.1")}

	assert.True(t, li.Subtotal().Equal(dec("0.3")), "0.1 sumado tres veces debe dar exactamente 0.3")
}

// Caso 4: el total agrega subtotales y el redondeo ocurre solo al presentar.
func TestTotal_AgregaSubtotales(t *testing.T) {
	items := []document.LineItem{
		{ArticuloID: "A", Cantidad: dec("1"), PrecioUnitario: dec("10.005")},
		{ArticuloID: "B", Cantidad: dec("1"), PrecioUnitario: dec("10.005")},
	}

	// Si cada línea se redondeara antes de sumar daría 20.02; acumulando
	// exacto el total es 20.01.
	assert.Equal(t, "20.01", document.Total(items).StringFixed(2))
}

// Caso 5: invariantes de línea.
func TestLineItem_Validate(t *testing.T) {
	base := document.LineItem{ArticuloID: "A1", Cantidad: dec("1"), PrecioUnitario: dec("5")}
	require.NoError(t, base.Validate())

	sinArticulo := base
	sinArticulo.ArticuloID = ""
	assert.Error(t, sinArticulo.Validate())

	cantidadCero := base
	cantidadCero.Cantidad = decimal.Zero
	assert.Error(t, cantidadCero.Validate(), "cantidad debe ser positiva")

	precioNegativo := base
	precioNegativo.PrecioUnitario = dec("-1")
	assert.Error(t, precioNegativo.Validate())

	descuentoExcesivo := base
	descuentoExcesivo.Descuento = dec("101")
	assert.Error(t, descuentoExcesivo.Validate(), "descuento tope 100")
}

// Caso 6: un documento necesita al menos una línea; el índice señala la mala.
func TestValidateItems(t *testing.T) {
	assert.Error(t, document.ValidateItems(nil), "sin líneas no hay documento")

	err := document.ValidateItems([]document.LineItem{
		{ArticuloID: "A", Cantidad: dec("1"), PrecioUnitario: dec("5")},
		{ArticuloID: "", Cantidad: dec("1"), PrecioUnitario: dec("5")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
}
