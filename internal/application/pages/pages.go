// Package pages declara la configuración de cada pantalla CRUD: recurso del
// backend, módulo que la habilita, permisos, columnas, campos de búsqueda y
// formulario. Las pantallas no tienen código propio: el caso de uso genérico
// interpreta estas configuraciones.
package pages

import (
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

// DefaultPageSize tamaño de página si la pantalla no declara otro.
const DefaultPageSize = 10

// Permissions nombres de permiso que habilitan cada acción de la pantalla.
type Permissions struct {
	View   string
	Add    string
	Edit   string
	Delete string
}

// Page configuración de una pantalla CRUD.
type Page struct {
	Key          string
	Title        string
	ResourcePath string // path del recurso en el backend ERP
	Module       string // módulo que gobierna la navegación
	Perms        Permissions
	Columns      []table.Column
	SearchFields []string
	Fields       []form.Field
	PageSize     int
	ReadOnly     bool // pantalla solo de consulta: sin alta/edición/borrado
}

// DocumentPage pantalla de composición de documentos de venta: igual que una
// Page más el ensamblado de líneas y las acciones propias del tipo.
type DocumentPage struct {
	Page
	Actions []string // acciones del backend habilitadas (ej. "cancelar")
}

var registry = map[string]Page{}
var documentRegistry = map[string]DocumentPage{}

func register(p Page) {
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	registry[p.Key] = p
}

func registerDocument(p DocumentPage) {
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	documentRegistry[p.Key] = p
}

// Get devuelve la configuración de una pantalla CRUD.
func Get(key string) (Page, bool) {
	p, ok := registry[key]
	return p, ok
}

// GetDocument devuelve la configuración de una pantalla de documentos.
func GetDocument(key string) (DocumentPage, bool) {
	p, ok := documentRegistry[key]
	return p, ok
}

// All devuelve todas las pantallas CRUD registradas.
func All() []Page {
	out := make([]Page, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	return out
}

// AllDocuments devuelve todas las pantallas de documentos registradas.
func AllDocuments() []DocumentPage {
	out := make([]DocumentPage, 0, len(documentRegistry))
	for _, p := range documentRegistry {
		out = append(out, p)
	}
	return out
}

// crud construye el juego de permisos convencional ver/crear/editar/eliminar.
func crud(entity string) Permissions {
	return Permissions{
		View:   "ver_" + entity,
		Add:    "crear_" + entity,
		Edit:   "editar_" + entity,
		Delete: "eliminar_" + entity,
	}
}
