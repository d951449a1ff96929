package simpleexcel

import (
	"fmt"
	"reflect"

	"github.com/xuri/excelize/v2"
)

var defaultTitleStyle = &StyleTemplate{Font: &FontTemplate{Bold: true}}

// sheetWriter places sections on one worksheet. Vertical sections stack
// below each other with a blank row in between; horizontal sections sit
// side by side from row 1 with a blank column in between. An explicit
// Position overrides both.
type sheetWriter struct {
	f        *excelize.File
	sheet    string
	exporter *DataExporter
	styles   map[*StyleTemplate]int

	nextRow int
	nextCol int
}

func (w *sheetWriter) write(sections []*SectionConfig) error {
	w.nextRow, w.nextCol = 1, 1
	for _, sec := range sections {
		col, row, err := w.origin(sec)
		if err != nil {
			return fmt.Errorf("section %q: %w", sec.ID, err)
		}

		end, err := w.writeSection(sec, col, row)
		if err != nil {
			return fmt.Errorf("section %q: %w", sec.ID, err)
		}

		if end+2 > w.nextRow {
			w.nextRow = end + 2
		}
		w.nextCol = col + len(sec.Columns) + 1
	}
	return nil
}

func (w *sheetWriter) origin(sec *SectionConfig) (int, int, error) {
	if sec.Position != "" {
		return excelize.CellNameToCoordinates(sec.Position)
	}
	if sec.Direction == SectionDirectionHorizontal {
		return w.nextCol, 1, nil
	}
	return 1, w.nextRow, nil
}

// writeSection returns the last row it used, or row-1 when it wrote nothing.
func (w *sheetWriter) writeSection(sec *SectionConfig, col, row int) (int, error) {
	if sec.Title != "" {
		if err := w.writeTitle(sec, col, row); err != nil {
			return 0, err
		}
		row++
	}

	if sec.ShowHeader {
		for i, c := range sec.Columns {
			if err := w.setCell(col+i, row, c.Header, sec.HeaderStyle); err != nil {
				return 0, err
			}
		}
		row++
	}

	for i, c := range sec.Columns {
		if c.Width <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(col + i)
		if err != nil {
			return 0, err
		}
		if err := w.f.SetColWidth(w.sheet, name, name, c.Width); err != nil {
			return 0, err
		}
	}

	rows := reflect.ValueOf(w.exporter.rowsFor(sec))
	if rows.Kind() == reflect.Slice || rows.Kind() == reflect.Array {
		for r := 0; r < rows.Len(); r++ {
			item := rows.Index(r)
			for i, c := range sec.Columns {
				v := w.exporter.format(c, fieldValue(item, c.FieldName))
				if err := w.setCell(col+i, row, v, nil); err != nil {
					return 0, err
				}
			}
			row++
		}
	}
	return row - 1, nil
}

// writeTitle merges the title across the section's columns.
func (w *sheetWriter) writeTitle(sec *SectionConfig, col, row int) error {
	first, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, first, sec.Title); err != nil {
		return err
	}

	last := first
	if len(sec.Columns) > 1 {
		if last, err = excelize.CoordinatesToCellName(col+len(sec.Columns)-1, row); err != nil {
			return err
		}
		if err := w.f.MergeCell(w.sheet, first, last); err != nil {
			return err
		}
	}

	style := sec.TitleStyle
	if style == nil {
		style = defaultTitleStyle
	}
	return w.applyStyle(first, last, style)
}

func (w *sheetWriter) setCell(col, row int, v interface{}, style *StyleTemplate) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
		return err
	}
	return w.applyStyle(cell, cell, style)
}

// fieldValue reads name from a struct (promoted fields included) or a
// string-keyed map, following pointers. Anything missing reads as "".
func fieldValue(item reflect.Value, name string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}

	switch item.Kind() {
	case reflect.Struct:
		if fv := item.FieldByName(name); fv.IsValid() && fv.CanInterface() {
			return fv.Interface()
		}
	case reflect.Map:
		keyType := item.Type().Key()
		if keyType.Kind() != reflect.String {
			return ""
		}
		if v := item.MapIndex(reflect.ValueOf(name).Convert(keyType)); v.IsValid() {
			return v.Interface()
		}
	}
	return ""
}
