package dto

import (
	"github.com/tu-usuario/gestion-backoffice/internal/domain/form"
	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

// ColumnInfo proyección serializable de una columna (sin el Render).
type ColumnInfo struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Type     string `json:"type"`
}

// RowActions qué acciones de fila puede ver este usuario en esta pantalla.
type RowActions struct {
	CanAdd    bool `json:"can_add"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
	CanView   bool `json:"can_view"`
}

// TableViewResponse la vista computada de una pantalla: filas ya filtradas,
// ordenadas, paginadas y formateadas, más columnas y acciones permitidas.
type TableViewResponse struct {
	Columns []ColumnInfo `json:"columns"`
	View    table.View   `json:"view"`
	Actions RowActions   `json:"actions"`
}

// FormControl un control ya sembrado para el modo pedido.
type FormControl struct {
	Field    form.Field `json:"field"`
	Value    any        `json:"value"`
	Disabled bool       `json:"disabled"`
}

// FormSchemaResponse el formulario de una pantalla para un modo del modal.
// En modo ver todos los controles van deshabilitados y no hay envío.
type FormSchemaResponse struct {
	Mode       string        `json:"mode"`
	Controls   []FormControl `json:"controls"`
	CanSubmit  bool          `json:"can_submit"`
	RecordID   string        `json:"record_id,omitempty"`
	PageKey    string        `json:"page_key"`
	PageTitle  string        `json:"page_title"`
}

// NavEntry una pantalla visible en la navegación del usuario.
type NavEntry struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Module   string `json:"module"`
	Kind     string `json:"kind"` // crud o documento
	ReadOnly bool   `json:"read_only"`
}

// DeleteConfirmation respuesta al primer paso del borrado: el borrado real
// solo ocurre con el round trip de confirmación explícita.
type DeleteConfirmation struct {
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
	Confirm  string `json:"confirm"` // path al que hacer DELETE con confirm=true
}
