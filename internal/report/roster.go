package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/locvowork/employee_gateway/internal/service"
	"github.com/locvowork/employee_gateway/pkg/simpleexcel"
)

// Section IDs a YAML template binds roster data to.
const (
	SectionRoster     = "roster"
	SectionTopEarners = "top_earners"

	FormatterSalary = "salary"
)

var headerStyle = &simpleexcel.StyleTemplate{
	Font: &simpleexcel.FontTemplate{Bold: true, Color: "#FFFFFF"},
	Fill: &simpleexcel.FillTemplate{Color: "#4472C4"},
}

// NewRosterExporter lays out the roster workbook. With an empty templatePath
// the built-in layout is used: a "Roster" sheet in upstream order and a
// "Top Earners" sheet with the first topN ranked employees.
func NewRosterExporter(roster service.Roster, templatePath string, topN int) (*simpleexcel.DataExporter, error) {
	top := roster.Ranked
	if topN >= 0 && topN < len(top) {
		top = top[:topN]
	}

	if templatePath != "" {
		exporter, err := simpleexcel.NewDataExporterFromYamlFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("load export template: %w", err)
		}
		exporter.RegisterFormatter(FormatterSalary, FormatSalary)
		exporter.
			BindSectionData(SectionRoster, roster.Employees).
			BindSectionData(SectionTopEarners, top)
		return exporter, nil
	}

	exporter := simpleexcel.NewDataExporter()
	exporter.RegisterFormatter(FormatterSalary, FormatSalary)

	exporter.AddSheet("Roster").
		AddSection(&simpleexcel.SectionConfig{
			ID:          SectionRoster,
			Title:       fmt.Sprintf("Employees (%d)", len(roster.Employees)),
			ShowHeader:  true,
			HeaderStyle: headerStyle,
			Data:        roster.Employees,
			Columns: []simpleexcel.ColumnConfig{
				{FieldName: "ID", Header: "ID", Width: 10},
				{FieldName: "Name", Header: "Name", Width: 28},
				{FieldName: "Salary", Header: "Salary", Width: 14},
				{FieldName: "Age", Header: "Age", Width: 8},
				{FieldName: "ProfileImage", Header: "Profile Image", Width: 40},
			},
		})

	exporter.AddSheet("Top Earners").
		AddSection(&simpleexcel.SectionConfig{
			ID:          SectionTopEarners,
			Title:       fmt.Sprintf("Top %d earners", len(top)),
			ShowHeader:  true,
			HeaderStyle: headerStyle,
			Data:        top,
			Columns: []simpleexcel.ColumnConfig{
				{FieldName: "Rank", Header: "Rank", Width: 8},
				{FieldName: "Name", Header: "Name", Width: 28},
				{FieldName: "Salary", Header: "Salary", Width: 16, FormatterName: FormatterSalary},
			},
		})

	return exporter, nil
}

var printer = message.NewPrinter(language.English)

// FormatSalary renders integer salaries with thousands separators and leaves
// any other value untouched.
func FormatSalary(v interface{}) interface{} {
	switch n := v.(type) {
	case int64:
		return printer.Sprintf("%d", n)
	case int:
		return printer.Sprintf("%d", n)
	}
	return v
}
