// Package document implementa la composición de documentos de venta
// (cotizaciones, pedidos, albaranes, facturas, tickets): líneas de detalle y
// sus totales. Toda la aritmética usa decimal; el redondeo a dos decimales
// ocurre solo al presentar, nunca al acumular.
package document

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem una línea de detalle: artículo, cantidad, precio unitario y
// descuento porcentual opcional.
type LineItem struct {
	ArticuloID     string          `json:"articulo"`
	Descripcion    string          `json:"descripcion,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"` // porcentaje 0..100
}

var hundred = decimal.NewFromInt(100)

// Subtotal devuelve cantidad × precio_unitario × (1 − descuento/100).
func (li LineItem) Subtotal() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(li.Descuento.Div(hundred))
	return li.Cantidad.Mul(li.PrecioUnitario).Mul(factor)
}

// Validate verifica los invariantes de una línea.
func (li LineItem) Validate() error {
	if li.ArticuloID == "" {
		return fmt.Errorf("línea sin artículo")
	}
	if li.Cantidad.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("cantidad debe ser mayor que cero")
	}
	if li.PrecioUnitario.IsNegative() {
		return fmt.Errorf("precio unitario no puede ser negativo")
	}
	if li.Descuento.IsNegative() || li.Descuento.GreaterThan(hundred) {
		return fmt.Errorf("descuento debe estar entre 0 y 100")
	}
	return nil
}

// Total suma los subtotales de todas las líneas.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// ValidateItems valida todas las líneas; un documento necesita al menos una.
func ValidateItems(items []LineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("el documento necesita al menos una línea")
	}
	for i, li := range items {
		if err := li.Validate(); err != nil {
			return fmt.Errorf("línea %d: %w", i+1, err)
		}
	}
	return nil
}
