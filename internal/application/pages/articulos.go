package pages

import (
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

func init() {
	register(Page{
		Key:          "articulos",
		Title:        "Artículos",
		ResourcePath: "/articulos/",
		Module:       "inventario",
		Perms:        crud("articulos"),
		Columns: []table.Column{
			{Key: "codigo", Label: "Código", Sortable: true},
			{Key: "nombre", Label: "Nombre", Sortable: true},
			{Key: "categoria", Label: "Categoría", Sortable: true},
			{Key: "precio", Label: "Precio", Type: table.TypeCurrency, Sortable: true},
			{Key: "stock_total", Label: "Stock", Type: table.TypeNumber, Sortable: true},
			{Key: "activo", Label: "Activo", Type: table.TypeBoolean},
		},
		SearchFields: []string{"codigo", "nombre", "categoria_nombre"},
		Fields: []form.Field{
			{Name: "codigo", Label: "Código", Type: form.TypeText, Required: true},
			{Name: "nombre", Label: "Nombre", Type: form.TypeText, Required: true},
			{Name: "descripcion", Label: "Descripción", Type: form.TypeTextarea},
			{Name: "categoria", Label: "Categoría", Type: form.TypeSelect},
			{Name: "precio", Label: "Precio", Type: form.TypeNumber, Required: true},
			{Name: "coste", Label: "Coste", Type: form.TypeNumber},
			{Name: "iva", Label: "IVA %", Type: form.TypeNumber, DefaultValue: "21"},
			{Name: "activo", Label: "Activo", Type: form.TypeCheckbox, DefaultValue: true},
		},
	})
}
