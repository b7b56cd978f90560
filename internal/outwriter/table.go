package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// percent is a share between 0 and 1 rendered as a percentage.
type percent float64

// dataTable is a titled grid of typed cells. Cells keep their Go type until
// the output format decides how to render them.
type dataTable struct {
	Title  string
	Header []string
	Rows   [][]any
}

// tableSet is everything one command prints, in every output format.
type tableSet struct {
	Tables []dataTable
	JSON   any
	// CSV writes a custom CSV layout. When nil the first table is written as is.
	CSV func(*csv.Writer, cellFormat) error
	// Text replaces Tables in terminal output when set.
	Text []dataTable
}

// cellFormat renders typed cells as text.
type cellFormat struct {
	fmtFloat  func(float64) string
	useColors bool
	maxWidth  int
}

func newCellFormat(cfg *contract.Config) cellFormat {
	return cellFormat{
		fmtFloat:  createFormatter(cfg.Precision),
		useColors: cfg.UseColors,
		maxWidth:  getMaxLabelWidth(cfg),
	}
}

// text renders a cell for the terminal: long strings are truncated and
// risk levels use their short, optionally colored, label.
func (f cellFormat) text(v any) string {
	switch c := v.(type) {
	case string:
		return contract.TruncateLabel(c, f.maxWidth)
	case schema.RiskLevel:
		if f.useColors {
			return contract.GetColorLabel(c)
		}
		return contract.GetPlainLabel(c)
	default:
		return f.plain(v)
	}
}

// plain renders a cell without truncation or color, for CSV.
func (f cellFormat) plain(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case schema.RiskLevel:
		return string(c)
	case schema.FormType:
		return string(c)
	case schema.RiskCount:
		return fmt.Sprintf("%d (%s%%)", c.Count, f.fmtFloat(c.Pct*100))
	case percent:
		return f.fmtFloat(float64(c)*100) + "%"
	case float64:
		return f.fmtFloat(c)
	case int:
		return strconv.Itoa(c)
	case bool:
		if c {
			return "Sí"
		}
		return "No"
	case time.Time:
		return c.Format(contract.DateTimeFormat)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}

// getMaxLabelWidth calculates the maximum width of text cells in table
// output based on the terminal width.
func getMaxLabelWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Level columns, borders and padding
	available := termWidth - 60
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}

// writeTableSet writes the set in the configured output mode.
func writeTableSet(set tableSet, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, set.JSON)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTableSetCSV(w, set, newCellFormat(cfg))
		}, "Wrote CSV")
	case schema.XLSXOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for xlsx output")
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeXLSX(w, set.Tables, cfg.Precision)
		}, "Wrote XLSX")
	case schema.ParquetOut:
		return errors.New("parquet output is only available for response exports")
	default:
		tables := set.Tables
		if set.Text != nil {
			tables = set.Text
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextTables(w, tables, newCellFormat(cfg))
		}, "Wrote table")
	}
}

// writeTableSetCSV writes either the custom layout or the first table.
func writeTableSetCSV(w io.Writer, set tableSet, f cellFormat) error {
	if set.CSV != nil {
		csvWriter := csv.NewWriter(w)
		if err := set.CSV(csvWriter, f); err != nil {
			return err
		}
		csvWriter.Flush()
		return csvWriter.Error()
	}
	if len(set.Tables) == 0 {
		return nil
	}
	table := set.Tables[0]
	return writeCSVWithHeader(w, table.Header, func(csvWriter *csv.Writer) error {
		for _, row := range table.Rows {
			record := make([]string, len(row))
			for i, cell := range row {
				record[i] = f.plain(cell)
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeTextTables renders every table with its title. The first column is
// left aligned and the rest right aligned.
func writeTextTables(w io.Writer, tables []dataTable, f cellFormat) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if t.Title != "" {
			if _, err := fmt.Fprintln(w, t.Title); err != nil {
				return err
			}
		}

		table := tablewriter.NewWriter(w)
		table.Header(t.Header)
		align := make([]tw.Align, len(t.Header))
		for c := range align {
			align[c] = tw.AlignRight
		}
		if len(align) > 0 {
			align[0] = tw.AlignLeft
		}
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.PerColumn = align
		})

		data := make([][]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			record := make([]string, len(row))
			for c, cell := range row {
				record[c] = f.text(cell)
			}
			data = append(data, record)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}
