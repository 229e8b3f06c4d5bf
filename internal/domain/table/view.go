package table

import (
	"sort"
	"strings"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// Compute aplica filtro → orden → paginación sobre la colección y proyecta
// las filas de la página pedida con las celdas ya formateadas.
//
//   - Filtro: coincidencia de subcadena sin distinguir mayúsculas contra la
//     representación textual de cada campo de searchFields; basta con que
//     UNO coincida (OR). Término vacío coincide con todo.
//   - Orden: una sola clave; numérico si ambos valores son numéricos,
//     lexicográfico en caso contrario. Orden estable: los empates conservan
//     el orden previo del slice.
//   - Paginación: tamaño fijo; la página pedida se ajusta al rango
//     [1, pageCount] (tras un borrado la página puede quedar fuera de rango).
func Compute(data []entity.Record, cols []Column, searchFields []string, q Query, f *Formatter) View {
	if f == nil {
		f = NewFormatter("")
	}
	if q.PageSize <= 0 {
		q.PageSize = 10
	}

	filtered := filter(data, searchFields, q.Search)
	if q.SortKey != "" {
		sortRecords(filtered, q.SortKey, q.SortDesc)
	}

	total := len(filtered)
	pageCount := (total + q.PageSize - 1) / q.PageSize
	if pageCount == 0 {
		pageCount = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	rows := make([]Row, 0, end-start)
	for _, rec := range filtered[start:end] {
		cells := make(map[string]string, len(cols))
		for _, col := range cols {
			cells[col.Key] = f.Cell(col, rec)
		}
		rows = append(rows, Row{ID: rec.ID(), Cells: cells, Record: rec})
	}

	return View{
		Rows:          rows,
		Page:          page,
		PageCount:     pageCount,
		Total:         len(data),
		TotalFiltered: total,
	}
}

func filter(data []entity.Record, fields []string, term string) []entity.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(fields) == 0 {
		out := make([]entity.Record, len(data))
		copy(out, data)
		return out
	}
	out := make([]entity.Record, 0, len(data))
	for _, rec := range data {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(searchText(rec[field])), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// searchText coerciona un valor a su representación buscable. Los objetos
// anidados aportan su campo de nombre; nil no aporta nada.
func searchText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case map[string]any:
		for _, k := range nestedNameKeys {
			if name, ok := x[k].(string); ok {
				return name
			}
		}
		return ""
	default:
		return scalarText(x)
	}
}

func sortRecords(data []entity.Record, key string, desc bool) {
	sort.SliceStable(data, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return lessValue(data[i][key], data[j][key])
	})
}

// lessValue compara con el orden nativo del valor subyacente: numérico para
// números, lexicográfico para el resto. nil ordena primero.
func lessValue(a, b any) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	na, aok := toFloat(a)
	nb, bok := toFloat(b)
	if aok && bok {
		return na < nb
	}
	return scalarText(a) < scalarText(b)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
