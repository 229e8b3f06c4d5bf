package table

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/entity"
)

// Campos de nombre que se buscan dentro de un objeto anidado, en orden.
var nestedNameKeys = []string{"nombre", "name", "titulo"}

// Placeholder para valores nulos o ausentes.
const emptyCell = "—"

// Layouts de fecha aceptados desde el backend.
var dateInputLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

var supportedLocales = language.NewMatcher([]language.Tag{
	language.Spanish, // por defecto
	language.English,
})

// Formatter formatea celdas según el idioma del usuario.
type Formatter struct {
	yes        string
	no         string
	itemSuffix string
	dateLayout string
}

// NewFormatter construye el formateador para un locale (ej. "es", "en-US").
// Un locale desconocido cae al español.
func NewFormatter(locale string) *Formatter {
	tag, _ := language.MatchStrings(supportedLocales, locale)
	base, _ := tag.Base()
	if base.String() == "en" {
		return &Formatter{yes: "Yes", no: "No", itemSuffix: "items", dateLayout: "01/02/2006"}
	}
	return &Formatter{yes: "Sí", no: "No", itemSuffix: "elementos", dateLayout: "02/01/2006"}
}

// Cell formatea el valor de una columna para un registro. Si la columna trae
// Render propio, ese gana; si no, aplica las reglas por defecto:
// nulo → em-dash, objeto anidado → su nombre, lista → longitud con sufijo,
// booleano → sí/no, fecha → fecha local, moneda → dos decimales fijos.
func (f *Formatter) Cell(col Column, rec entity.Record) string {
	value, ok := rec[col.Key]
	if col.Render != nil {
		return col.Render(value, rec)
	}
	if !ok || value == nil {
		return emptyCell
	}

	switch v := value.(type) {
	case map[string]any:
		for _, k := range nestedNameKeys {
			if name, ok := v[k].(string); ok && name != "" {
				return name
			}
		}
		return emptyCell
	case []any:
		return fmt.Sprintf("%d %s", len(v), f.itemSuffix)
	case bool:
		if v {
			return f.yes
		}
		return f.no
	}

	switch col.Type {
	case TypeDate:
		if s, ok := value.(string); ok {
			for _, layout := range dateInputLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t.Format(f.dateLayout)
				}
			}
		}
		return scalarText(value)
	case TypeCurrency:
		if d, ok := toDecimal(value); ok {
			return d.StringFixed(2)
		}
		return scalarText(value)
	default:
		return scalarText(value)
	}
}

// scalarText coerciona un valor escalar a texto sin formateo de tipo.
func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return x, true
	default:
		return decimal.Zero, false
	}
}
