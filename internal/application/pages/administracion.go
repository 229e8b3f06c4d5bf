package pages

import (
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

func init() {
	register(Page{
		Key:          "usuarios",
		Title:        "Usuarios",
		ResourcePath: "/usuarios/",
		Module:       "administracion",
		Perms:        crud("usuarios"),
		Columns: []table.Column{
			{Key: "nombre", Label: "Nombre", Sortable: true},
			{Key: "email", Label: "Email", Sortable: true},
			{Key: "role", Label: "Rol", Sortable: true},
			{Key: "cargo", Label: "Cargo"},
			{Key: "modulos", Label: "Módulos"},
			{Key: "ultimo_acceso", Label: "Último acceso", Type: table.TypeDate, Sortable: true},
			{Key: "activo", Label: "Activo", Type: table.TypeBoolean},
		},
		SearchFields: []string{"nombre", "email", "role"},
		Fields: []form.Field{
			{Name: "nombre", Label: "Nombre", Type: form.TypeText, Required: true},
			{Name: "email", Label: "Email", Type: form.TypeEmail, Required: true, Validate: validateEmail},
			{Name: "role", Label: "Rol", Type: form.TypeSelect, Required: true, DefaultValue: "empleado", Options: []form.Option{
				{Value: "empleado", Label: "Empleado"},
				{Value: "admin", Label: "Administrador"},
			}},
			{Name: "cargo", Label: "Cargo", Type: form.TypeText},
			{Name: "activo", Label: "Activo", Type: form.TypeCheckbox, DefaultValue: true},
		},
	})

	register(Page{
		Key:          "empresas",
		Title:        "Empresas",
		ResourcePath: "/empresas/",
		Module:       "administracion",
		Perms:        crud("empresas"),
		Columns: []table.Column{
			{Key: "nombre", Label: "Nombre", Sortable: true},
			{Key: "cif", Label: "CIF"},
			{Key: "plan", Label: "Plan", Sortable: true},
			{Key: "usuarios_count", Label: "Usuarios", Type: table.TypeNumber, Sortable: true},
			{Key: "fecha_registro", Label: "Registro", Type: table.TypeDate, Sortable: true},
			{Key: "activa", Label: "Activa", Type: table.TypeBoolean},
		},
		SearchFields: []string{"nombre", "cif"},
		Fields: []form.Field{
			{Name: "nombre", Label: "Nombre", Type: form.TypeText, Required: true},
			{Name: "cif", Label: "CIF", Type: form.TypeText, Required: true},
			{Name: "direccion", Label: "Dirección", Type: form.TypeTextarea},
			{Name: "telefono", Label: "Teléfono", Type: form.TypeTel},
			{Name: "email", Label: "Email", Type: form.TypeEmail, Validate: validateEmail},
			{Name: "web", Label: "Web", Type: form.TypeURL},
			{Name: "plan", Label: "Plan", Type: form.TypeSelect, DefaultValue: "basico", Options: []form.Option{
				{Value: "basico", Label: "Básico"},
				{Value: "profesional", Label: "Profesional"},
				{Value: "enterprise", Label: "Enterprise"},
			}},
			{Name: "activa", Label: "Activa", Type: form.TypeCheckbox, DefaultValue: true},
		},
	})
}
