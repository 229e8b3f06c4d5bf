package entity

import (
	"encoding/json"
	"strconv"
)

// Record es un registro opaco tal como lo devuelve el backend ERP: un mapa de
// nombre de campo a valor primitivo, objeto anidado o lista. El esquema lo
// define el backend; esta capa nunca es dueña del estado y trata los campos
// denormalizados (items_count, articulos_count, ...) como solo lectura.
type Record map[string]any

// ID devuelve el campo "id" coercionado a string. Los backends devuelven ids
// numéricos o string indistintamente; internamente se comparan como string.
func (r Record) ID() string {
	return CoerceID(r["id"])
}

// Get devuelve el valor de un campo (nil si no existe).
func (r Record) Get(key string) any {
	return r[key]
}

// Clone devuelve una copia superficial del registro.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CoerceID convierte un valor de id (string, número JSON, json.Number) a string.
func CoerceID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		// JSON sin Decoder.UseNumber entrega números como float64
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}
