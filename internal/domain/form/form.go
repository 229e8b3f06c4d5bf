// Package form implementa el renderizador genérico de formularios dirigido
// por descriptores de campo: sembrado según el modo del modal, validación de
// requeridos y validadores propios, y ensamblado del mapa campo→valor que se
// envía al backend.
package form

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// Tipos de control soportados.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeTel      = "tel"
	TypeURL      = "url"
	TypeNumber   = "number"
	TypeDate     = "date"
	TypeSelect   = "select"
	TypeTextarea = "textarea"
	TypeCheckbox = "checkbox"
)

// Option una opción de un control select.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describe un control y su vínculo con un campo del registro.
type Field struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Type         string   `json:"type"`
	Required     bool     `json:"required"`
	Options      []Option `json:"options,omitempty"`
	DefaultValue any      `json:"default_value,omitempty"`

	// Validate devuelve un mensaje de error o "" si el valor es válido.
	// Se evalúa después de la regla de requerido.
	Validate func(value any) string `json:"-"`
}

// Seed construye el estado inicial del formulario. Con rec == nil (modo
// crear) siembra desde DefaultValue; con registro (editar/ver) siembra desde
// sus campos. Debe invocarse en cada apertura del modal: el estado nunca se
// conserva entre aperturas, así un crear tras un editar no arrastra valores.
func Seed(fields []Field, rec entity.Record) map[string]any {
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		if rec == nil {
			if f.DefaultValue != nil {
				values[f.Name] = f.DefaultValue
			} else {
				values[f.Name] = zeroValue(f.Type)
			}
			continue
		}
		if v, ok := rec[f.Name]; ok && v != nil {
			values[f.Name] = v
		} else {
			values[f.Name] = zeroValue(f.Type)
		}
	}
	return values
}

// ValidateAll valida todos los campos y devuelve los errores por nombre de
// campo. Un mapa vacío significa que el envío puede proceder; con errores el
// envío se aborta sin tocar la red.
func ValidateAll(fields []Field, values map[string]any) map[string]string {
	errs := make(map[string]string)
	for _, f := range fields {
		v := values[f.Name]
		if f.Required && isEmpty(f, v) {
			errs[f.Name] = fmt.Sprintf("El campo %s es obligatorio", f.Label)
			continue
		}
		if f.Validate != nil && !isEmpty(f, v) {
			if msg := f.Validate(v); msg != "" {
				errs[f.Name] = msg
			}
		}
	}
	return errs
}

// Assemble filtra el estado del formulario a los campos declarados, que es
// el payload que recibe el handler de envío.
func Assemble(fields []Field, values map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := values[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out
}

// isEmpty decide si un valor cuenta como vacío para la regla de requerido.
// Un checkbox requerido debe estar marcado; el cero numérico es un valor.
func isEmpty(f Field, v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case bool:
		return f.Type == TypeCheckbox && !x
	case []any:
		return len(x) == 0
	default:
		return false
	}
}

func zeroValue(fieldType string) any {
	if fieldType == TypeCheckbox {
		return false
	}
	return ""
}
