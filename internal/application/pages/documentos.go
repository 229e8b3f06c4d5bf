package pages

import (
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

// Columnas comunes a todos los documentos de venta. items_count es un campo
// denormalizado que calcula el backend.
func documentColumns(numeroLabel string) []table.Column {
	return []table.Column{
		{Key: "numero", Label: numeroLabel, Sortable: true},
		{Key: "cliente", Label: "Cliente", Sortable: true},
		{Key: "fecha", Label: "Fecha", Type: table.TypeDate, Sortable: true},
		{Key: "items", Label: "Líneas"},
		{Key: "items_count", Label: "Nº líneas", Type: table.TypeNumber},
		{Key: "total", Label: "Total", Type: table.TypeCurrency, Sortable: true},
		{Key: "estado", Label: "Estado", Sortable: true},
	}
}

func documentFields() []form.Field {
	return []form.Field{
		{Name: "cliente", Label: "Cliente", Type: form.TypeSelect, Required: true},
		{Name: "fecha", Label: "Fecha", Type: form.TypeDate, Required: true},
		{Name: "observaciones", Label: "Observaciones", Type: form.TypeTextarea},
	}
}

func init() {
	registerDocument(DocumentPage{
		Page: Page{
			Key:          "cotizaciones",
			Title:        "Cotizaciones",
			ResourcePath: "/cotizaciones/",
			Module:       "ventas",
			Perms:        crud("cotizaciones"),
			Columns:      documentColumns("Nº cotización"),
			SearchFields: []string{"numero", "cliente_nombre"},
			Fields:       documentFields(),
		},
		Actions: []string{"crear_factura"},
	})

	registerDocument(DocumentPage{
		Page: Page{
			Key:          "pedidos",
			Title:        "Pedidos",
			ResourcePath: "/pedidos/",
			Module:       "ventas",
			Perms:        crud("pedidos"),
			Columns:      documentColumns("Nº pedido"),
			SearchFields: []string{"numero", "cliente_nombre"},
			Fields:       documentFields(),
		},
		Actions: []string{"marcar_entregado"},
	})

	registerDocument(DocumentPage{
		Page: Page{
			Key:          "albaranes",
			Title:        "Albaranes",
			ResourcePath: "/albaranes/",
			Module:       "ventas",
			Perms:        crud("albaranes"),
			Columns:      documentColumns("Nº albarán"),
			SearchFields: []string{"numero", "cliente_nombre"},
			Fields:       documentFields(),
		},
	})

	registerDocument(DocumentPage{
		Page: Page{
			Key:          "facturas",
			Title:        "Facturas",
			ResourcePath: "/facturas/",
			Module:       "ventas",
			Perms:        crud("facturas"),
			Columns:      documentColumns("Nº factura"),
			SearchFields: []string{"numero", "cliente_nombre"},
			Fields:       documentFields(),
		},
		Actions: []string{"cancelar", "reenviar"},
	})

	registerDocument(DocumentPage{
		Page: Page{
			Key:          "tickets",
			Title:        "Tickets",
			ResourcePath: "/tickets/",
			Module:       "ventas",
			Perms:        crud("tickets"),
			Columns:      documentColumns("Nº ticket"),
			SearchFields: []string{"numero", "cliente_nombre"},
			Fields:       documentFields(),
			PageSize:     20,
		},
	})
}
