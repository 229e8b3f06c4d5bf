package pages

import (
	"strings"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

func init() {
	register(Page{
		Key:          "contactos",
		Title:        "Contactos",
		ResourcePath: "/contactos/",
		Module:       "ventas",
		Perms:        crud("contactos"),
		Columns: []table.Column{
			{Key: "nombre", Label: "Nombre", Sortable: true},
			{Key: "tipo", Label: "Tipo", Sortable: true},
			{Key: "email", Label: "Email"},
			{Key: "telefono", Label: "Teléfono"},
			{Key: "categoria", Label: "Categoría"},
			{Key: "saldo", Label: "Saldo", Type: table.TypeCurrency, Sortable: true},
			{Key: "activo", Label: "Activo", Type: table.TypeBoolean},
		},
		SearchFields: []string{"nombre", "email", "telefono", "nif"},
		Fields: []form.Field{
			{Name: "nombre", Label: "Nombre", Type: form.TypeText, Required: true},
			{Name: "tipo", Label: "Tipo", Type: form.TypeSelect, Required: true, DefaultValue: "cliente", Options: []form.Option{
				{Value: "cliente", Label: "Cliente"},
				{Value: "proveedor", Label: "Proveedor"},
			}},
			{Name: "nif", Label: "NIF", Type: form.TypeText, Required: true},
			{Name: "email", Label: "Email", Type: form.TypeEmail, Validate: validateEmail},
			{Name: "telefono", Label: "Teléfono", Type: form.TypeTel},
			{Name: "direccion", Label: "Dirección", Type: form.TypeTextarea},
			{Name: "activo", Label: "Activo", Type: form.TypeCheckbox, DefaultValue: true},
		},
	})
}

// validateEmail validación mínima: el backend revalida con su propio esquema.
func validateEmail(v any) string {
	s, _ := v.(string)
	if s == "" {
		return ""
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || !strings.Contains(s[at:], ".") {
		return "Email no válido"
	}
	return ""
}
