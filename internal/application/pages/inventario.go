package pages

import (
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

func init() {
	register(Page{
		Key:          "almacenes",
		Title:        "Almacenes",
		ResourcePath: "/almacenes/",
		Module:       "inventario",
		Perms:        crud("almacenes"),
		Columns: []table.Column{
			{Key: "nombre", Label: "Nombre", Sortable: true},
			{Key: "ubicacion", Label: "Ubicación"},
			{Key: "responsable", Label: "Responsable"},
			// articulos_count lo calcula y denormaliza el backend
			{Key: "articulos_count", Label: "Artículos", Type: table.TypeNumber, Sortable: true},
			{Key: "activo", Label: "Activo", Type: table.TypeBoolean},
		},
		SearchFields: []string{"nombre", "ubicacion"},
		Fields: []form.Field{
			{Name: "nombre", Label: "Nombre", Type: form.TypeText, Required: true},
			{Name: "ubicacion", Label: "Ubicación", Type: form.TypeText},
			{Name: "responsable", Label: "Responsable", Type: form.TypeText},
			{Name: "activo", Label: "Activo", Type: form.TypeCheckbox, DefaultValue: true},
		},
	})

	register(Page{
		Key:          "stock",
		Title:        "Stock",
		ResourcePath: "/stock/",
		Module:       "inventario",
		// el stock se muta con movimientos en el backend, no desde esta pantalla
		ReadOnly: true,
		Perms:    Permissions{View: "ver_inventario"},
		Columns: []table.Column{
			{Key: "articulo", Label: "Artículo", Sortable: true},
			{Key: "almacen", Label: "Almacén", Sortable: true},
			{Key: "cantidad", Label: "Cantidad", Type: table.TypeNumber, Sortable: true},
			{Key: "minimo", Label: "Mínimo", Type: table.TypeNumber},
			{Key: "actualizado", Label: "Actualizado", Type: table.TypeDate, Sortable: true},
		},
		SearchFields: []string{"articulo", "almacen"},
		PageSize:     20,
	})
}
