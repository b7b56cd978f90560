package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/psicosocial/schema"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer("[", "", "]", "", ":", "", "*", "", "?", "", "/", "-", `\`, "-")

// sheetName derives a valid, unique sheet name from a table title.
func sheetName(title string, index int, used map[string]bool) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if name == "" {
		name = "Hoja " + strconv.Itoa(index+1)
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	base := name
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := " " + strconv.Itoa(n)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

// xlsxValue keeps numbers numeric so the workbook can be computed on.
func xlsxValue(v any, precision int) any {
	switch c := v.(type) {
	case schema.RiskLevel:
		return string(c)
	case schema.FormType:
		return string(c)
	case schema.RiskCount:
		return fmt.Sprintf("%d (%s%%)", c.Count, createFormatter(precision)(c.Pct*100))
	case percent:
		return roundTo(float64(c)*100, precision)
	case float64:
		return roundTo(c, precision)
	case bool:
		if c {
			return "Sí"
		}
		return "No"
	default:
		return v
	}
}

// writeXLSX writes one sheet per table, with the header on the first row.
func writeXLSX(w io.Writer, tables []dataTable, precision int) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	used := map[string]bool{}
	for i, t := range tables {
		name := sheetName(t.Title, i, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}

		header := make([]any, len(t.Header))
		for c, h := range t.Header {
			header[c] = h
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %q: %w", name, err)
		}
		for r, row := range t.Rows {
			cells := make([]any, len(row))
			for c, cell := range row {
				cells[c] = xlsxValue(cell, precision)
			}
			axis, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, axis, &cells); err != nil {
				return fmt.Errorf("failed to write row %d of %q: %w", r+1, name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
