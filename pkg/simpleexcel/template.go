package simpleexcel

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	SectionDirectionHorizontal = "horizontal"
	SectionDirectionVertical   = "vertical"
)

// ReportTemplate is the root of a YAML layout file:
//
//	sheets:
//	  - name: Payroll
//	    sections:
//	      - id: top_earners
//	        show_header: true
//	        columns:
//	          - {field_name: Name, header: Who}
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is one block of rows on a sheet. Data is set directly for
// programmatic layouts; YAML layouts leave it nil and receive rows through
// DataExporter.BindSectionData keyed by ID.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"`
	ShowHeader  bool           `yaml:"show_header"`
	Direction   string         `yaml:"direction"`
	Position    string         `yaml:"position"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig maps a struct field or map key to one spreadsheet column.
// Formatter wins over FormatterName when both are set.
type ColumnConfig struct {
	FieldName     string    `yaml:"field_name"`
	Header        string    `yaml:"header"`
	Width         float64   `yaml:"width"`
	Formatter     Formatter `yaml:"-"`
	FormatterName string    `yaml:"formatter"`
}

// StyleTemplate colors are hex strings, with or without a leading '#'.
type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"`
}

type FillTemplate struct {
	Color string `yaml:"color"`
}

var errEmptyTemplate = errors.New("yaml config is empty")

// NewDataExporterFromYamlConfig builds an exporter whose sheets and sections
// come from yamlConfig.
func NewDataExporterFromYamlConfig(yamlConfig string) (*DataExporter, error) {
	if strings.TrimSpace(yamlConfig) == "" {
		return nil, errEmptyTemplate
	}

	var tmpl ReportTemplate
	if err := yaml.Unmarshal([]byte(yamlConfig), &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	e := NewDataExporter()
	for i := range tmpl.Sheets {
		sheet := &tmpl.Sheets[i]
		sb := e.AddSheet(sheet.Name)
		for j := range sheet.Sections {
			sb.AddSection(&sheet.Sections[j])
		}
	}
	return e, nil
}

func NewDataExporterFromYamlFile(path string) (*DataExporter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml file: %w", err)
	}
	return NewDataExporterFromYamlConfig(string(raw))
}
