// Package excel vuelca una vista de tabla computada a un libro XLSX usando
// excelize. Las celdas salen ya formateadas (moneda, fechas, Sí/No) igual que
// en pantalla.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/gestion-backoffice/internal/domain/table"
)

// Exporter implementa usecase.TableExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export genera el libro y devuelve sus bytes.
func (e *Exporter) Export(title string, cols []table.Column, view table.View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := clampSheetName(title)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}

	// Fila de cabecera
	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de cabecera: %w", err)
		}
		if err := f.SetCellValue(name, cell, c.Label); err != nil {
			return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("excel: aplicar estilo: %w", err)
		}
	}

	// Filas de datos, en el mismo orden que la vista
	for r, row := range view.Rows {
		for c, col := range cols {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("excel: celda de datos: %w", err)
			}
			if err := f.SetCellValue(name, cell, row.Cells[col.Key]); err != nil {
				return nil, fmt.Errorf("excel: escribir celda: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// clampSheetName recorta el título a los 31 caracteres que permite Excel.
func clampSheetName(title string) string {
	if title == "" {
		return "Datos"
	}
	runes := []rune(title)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}
