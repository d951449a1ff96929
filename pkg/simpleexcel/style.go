package simpleexcel

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// applyStyle styles the range from:to. Each template is registered with the
// workbook once per sheet.
func (w *sheetWriter) applyStyle(from, to string, tmpl *StyleTemplate) error {
	if tmpl == nil {
		return nil
	}

	id, ok := w.styles[tmpl]
	if !ok {
		var err error
		if id, err = w.f.NewStyle(toExcelStyle(tmpl)); err != nil {
			return err
		}
		w.styles[tmpl] = id
	}
	return w.f.SetCellStyle(w.sheet, from, to, id)
}

func toExcelStyle(tmpl *StyleTemplate) *excelize.Style {
	s := &excelize.Style{}
	if tmpl.Font != nil {
		s.Font = &excelize.Font{Bold: tmpl.Font.Bold, Color: hexColor(tmpl.Font.Color)}
	}
	if tmpl.Fill != nil {
		// Pattern 1 is a solid fill.
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(tmpl.Fill.Color)}}
	}
	return s
}

func hexColor(c string) string {
	return strings.ToUpper(strings.TrimPrefix(c, "#"))
}
