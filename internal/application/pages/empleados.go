package pages

import (
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

func init() {
	register(Page{
		Key:          "empleados",
		Title:        "Empleados",
		ResourcePath: "/empleados/",
		Module:       "rrhh",
		Perms:        crud("empleados"),
		Columns: []table.Column{
			{Key: "nombre", Label: "Nombre", Sortable: true},
			{Key: "apellidos", Label: "Apellidos", Sortable: true},
			{Key: "cargo", Label: "Cargo", Sortable: true},
			{Key: "departamento", Label: "Departamento"},
			{Key: "fecha_alta", Label: "Fecha de alta", Type: table.TypeDate, Sortable: true},
			{Key: "salario", Label: "Salario", Type: table.TypeCurrency},
			{Key: "activo", Label: "Activo", Type: table.TypeBoolean},
		},
		SearchFields: []string{"nombre", "apellidos", "dni", "cargo"},
		Fields: []form.Field{
			{Name: "nombre", Label: "Nombre", Type: form.TypeText, Required: true},
			{Name: "apellidos", Label: "Apellidos", Type: form.TypeText, Required: true},
			{Name: "dni", Label: "DNI", Type: form.TypeText, Required: true},
			{Name: "email", Label: "Email", Type: form.TypeEmail, Validate: validateEmail},
			{Name: "telefono", Label: "Teléfono", Type: form.TypeTel},
			{Name: "cargo", Label: "Cargo", Type: form.TypeText},
			{Name: "departamento", Label: "Departamento", Type: form.TypeSelect},
			{Name: "fecha_alta", Label: "Fecha de alta", Type: form.TypeDate, Required: true},
			{Name: "salario", Label: "Salario", Type: form.TypeNumber},
			{Name: "activo", Label: "Activo", Type: form.TypeCheckbox, DefaultValue: true},
		},
	})
}
