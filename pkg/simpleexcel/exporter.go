package simpleexcel

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbooks this package produces.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errNoSheets = errors.New("no sheets to export")

// Formatter converts a cell value before it is written.
type Formatter func(interface{}) interface{}

// DataExporter lays out sheets made of sections and renders them with
// excelize. Sheets come from AddSheet or from a YAML template; both kinds
// can be mixed and keep their insertion order.
type DataExporter struct {
	sheets     []*SheetBuilder
	bound      map[string]interface{}
	formatters map[string]Formatter
}

type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func NewDataExporter() *DataExporter {
	return &DataExporter{
		bound:      map[string]interface{}{},
		formatters: map[string]Formatter{},
	}
}

func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{exporter: e, name: name}
	e.sheets = append(e.sheets, sb)
	return sb
}

// GetSheet returns the sheet called name, or nil.
func (e *DataExporter) GetSheet(name string) *SheetBuilder {
	for _, sb := range e.sheets {
		if sb.name == name {
			return sb
		}
	}
	return nil
}

// BindSectionData supplies rows for every section with this ID whose Data
// field is nil.
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.bound[id] = data
	return e
}

// RegisterFormatter makes fn available to columns through FormatterName.
func (e *DataExporter) RegisterFormatter(name string, fn Formatter) *DataExporter {
	e.formatters[name] = fn
	return e
}

func (sb *SheetBuilder) AddSection(section *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, section)
	return sb
}

// Build returns to the exporter so calls can keep chaining.
func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

// BuildExcel renders every sheet into a new workbook. The caller must Close
// the returned file.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	if len(e.sheets) == 0 {
		return nil, errNoSheets
	}

	f := excelize.NewFile()
	for i, sb := range e.sheets {
		if err := addWorksheet(f, i, sb.name); err != nil {
			f.Close()
			return nil, err
		}
		w := &sheetWriter{f: f, sheet: sb.name, exporter: e, styles: map[*StyleTemplate]int{}}
		if err := w.write(sb.sections); err != nil {
			f.Close()
			return nil, fmt.Errorf("render sheet %q: %w", sb.name, err)
		}
	}
	return f, nil
}

// addWorksheet renames the default sheet for the first builder so the
// workbook has no stray empty "Sheet1".
func addWorksheet(f *excelize.File, index int, name string) error {
	if index == 0 {
		return f.SetSheetName(f.GetSheetName(0), name)
	}
	_, err := f.NewSheet(name)
	return err
}

func (e *DataExporter) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.ToWriter(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// ExportToExcel saves the workbook at path.
func (e *DataExporter) ExportToExcel(path string) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func (e *DataExporter) rowsFor(sec *SectionConfig) interface{} {
	if sec.Data != nil || sec.ID == "" {
		return sec.Data
	}
	return e.bound[sec.ID]
}

func (e *DataExporter) format(col ColumnConfig, v interface{}) interface{} {
	if col.Formatter != nil {
		return col.Formatter(v)
	}
	if fn, ok := e.formatters[col.FormatterName]; ok && col.FormatterName != "" {
		return fn(v)
	}
	return v
}
