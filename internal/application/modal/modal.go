// Package modal es la máquina de estados del modal de formulario: abierto o
// cerrado × modo crear/editar/ver. Ninguna transición es inválida: cualquier
// open* desde cualquier estado simplemente sobrescribe.
package modal

import "github.com/tu-usuario/gestion-backoffice/internal/domain/entity"

// Modos del modal.
const (
	ModeCreate = "create"
	ModeEdit   = "edit"
	ModeView   = "view"
)

// State estado del modal. Invariante: Data es nil si y solo si Mode es create.
type State struct {
	IsOpen bool          `json:"is_open"`
	Mode   string        `json:"mode"`
	Data   entity.Record `json:"data"`
}

// Closed devuelve el estado de reposo: cerrado, modo crear, sin registro.
func Closed() State {
	return State{IsOpen: false, Mode: ModeCreate, Data: nil}
}

// OpenCreate abre el modal para crear un registro nuevo.
func (s State) OpenCreate() State {
	return State{IsOpen: true, Mode: ModeCreate, Data: nil}
}

// OpenEdit abre el modal para editar el registro.
func (s State) OpenEdit(item entity.Record) State {
	return State{IsOpen: true, Mode: ModeEdit, Data: item}
}

// OpenView abre el modal en solo lectura.
func (s State) OpenView(item entity.Record) State {
	return State{IsOpen: true, Mode: ModeView, Data: item}
}

// Close vuelve al estado de reposo.
func (s State) Close() State {
	return Closed()
}

// ValidMode informa si el modo es uno de los tres conocidos.
func ValidMode(mode string) bool {
	return mode == ModeCreate || mode == ModeEdit || mode == ModeView
}
