// Package table implementa el motor genérico de tablas de datos: filtrado por
// término de búsqueda, orden por una columna y paginación del lado del
// servidor, más el formateo por defecto de celdas. Toda pantalla CRUD
// proyecta su colección a través de este único motor; la estrategia de
// presentación (JSON, PDF, Excel) la decide quien consume la vista.
package table

import "github.com/tu-usuario/gestion-backoffice/internal/domain/entity"

// Tipos de columna que alteran el formateo por defecto.
const (
	TypeText     = "text"
	TypeNumber   = "number"
	TypeDate     = "date"
	TypeCurrency = "currency"
	TypeBoolean  = "boolean"
)

// Column describe cómo proyectar un campo del registro a una celda.
type Column struct {
	Key      string
	Label    string
	Sortable bool
	Type     string // text (por defecto), number, date, currency, boolean

	// Render reemplaza el formateo por defecto para esta columna.
	Render func(value any, rec entity.Record) string `json:"-"`
}

// Query parámetros de la vista solicitada.
type Query struct {
	Search   string
	SortKey  string
	SortDesc bool
	Page     int // 1-based; fuera de rango se ajusta al rango válido
	PageSize int
}

// Row una fila ya proyectada: id del registro más las celdas formateadas por
// clave de columna.
type Row struct {
	ID     string            `json:"id"`
	Cells  map[string]string `json:"cells"`
	Record entity.Record     `json:"record"`
}

// View resultado de aplicar filtro → orden → paginación sobre la colección.
type View struct {
	Rows          []Row `json:"rows"`
	Page          int   `json:"page"`
	PageCount     int   `json:"page_count"`
	Total         int   `json:"total"`
	TotalFiltered int   `json:"total_filtered"`
}
