package docx

import (
	"fmt"
	"strconv"

	"github.com/huangsam/psicosocial/schema"
)

const (
	fillHeader    = "003F88"
	fillPVEHeader = "FFC000"
	fillWhite     = "FFFFFF"
	fontSize      = "16" // half-points
	tableWidth    = "9351"
	factorWidth   = 2600
)

// riskFills are the cell backgrounds of each level in report tables.
var riskFills = map[schema.RiskLevel]string{
	schema.SinRiesgo:     "C6EFCE",
	schema.RiesgoBajo:    "EBFFB0",
	schema.RiesgoMedio:   "FFFF99",
	schema.RiesgoAlto:    "FFD580",
	schema.RiesgoMuyAlto: "FF8080",
	schema.NoAplica:      "EEEEEE",
}

func borders(tag string, inside bool) *Node {
	sides := []string{"w:top", "w:left", "w:bottom", "w:right"}
	if inside {
		sides = append(sides, "w:insideH", "w:insideV")
	}
	b := El(tag)
	for _, s := range sides {
		b.With(El(s, "w:val", "single", "w:sz", "4", "w:color", "auto"))
	}
	return b
}

func shading(fill string) *Node {
	if fill == "" {
		return nil
	}
	return El("w:shd", "w:val", "clear", "w:color", "auto", "w:fill", fill)
}

func tableProps() *Node {
	return El("w:tblPr").With(
		El("w:tblW", "w:w", tableWidth, "w:type", "dxa"),
		El("w:jc", "w:val", "center"),
		borders("w:tblBorders", true),
	)
}

// textStyle describes one cell's text and background.
type textStyle struct {
	width    int
	fill     string
	centered bool
	bold     bool
	color    string
}

func runProps(st textStyle) *Node {
	rp := El("w:rPr")
	if st.bold {
		rp.With(El("w:b"))
	}
	if st.color != "" {
		rp.With(El("w:color", "w:val", st.color))
	}
	return rp.With(El("w:sz", "w:val", fontSize))
}

func textRun(text string, st textStyle) *Node {
	t := El("w:t")
	setRunText(t, text)
	return El("w:r").With(runProps(st), t)
}

func cell(text string, st textStyle) *Node {
	props := El("w:tcPr")
	if st.width > 0 {
		props.With(El("w:tcW", "w:w", strconv.Itoa(st.width), "w:type", "dxa"))
	}
	props.With(borders("w:tcBorders", false), shading(st.fill), El("w:vAlign", "w:val", "center"))

	p := El("w:p")
	if st.centered {
		p.With(El("w:pPr").With(El("w:jc", "w:val", "center")))
	}
	return El("w:tc").With(props, p.With(textRun(text, st)))
}

func row(header bool, cells ...*Node) *Node {
	tr := El("w:tr")
	if header {
		tr.With(El("w:trPr").With(El("w:tblHeader")))
	}
	return tr.With(cells...)
}

func headerCell(text string, width int, fill string) *Node {
	return cell(text, textStyle{width: width, fill: fill, centered: true, bold: true, color: fillWhite})
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// RiskTable builds the five-level distribution table with counts and shares.
// Alto cells are highlighted when alto plus muy alto reach 30% and muy alto
// cells when muy alto alone reaches 20%.
func RiskTable(rows []schema.RiskTableRow) *Node {
	header := []*Node{headerCell("Factor", factorWidth, fillHeader)}
	for _, h := range []string{"Sin Riesgo", "R. Bajo", "R. Medio", "R. Alto", "R. Muy Alto"} {
		header = append(header, headerCell(h, 0, fillHeader), headerCell("%", 0, fillHeader))
	}
	header = append(header, headerCell("Total", 0, fillHeader))

	tbl := El("w:tbl").With(tableProps(), row(true, header...))
	for _, r := range rows {
		fills := [5]string{
			riskFills[schema.SinRiesgo],
			riskFills[schema.RiesgoBajo],
			riskFills[schema.RiesgoMedio],
		}
		if r.HighPct() >= 0.3 {
			fills[3] = riskFills[schema.RiesgoAlto]
		}
		if r.MuyAlto.Pct >= 0.2 {
			fills[4] = riskFills[schema.RiesgoMuyAlto]
		}

		cells := []*Node{cell(r.Factor, textStyle{width: factorWidth})}
		for i, rc := range r.Counts() {
			st := textStyle{fill: fills[i], centered: true}
			cells = append(cells, cell(strconv.Itoa(rc.Count), st), cell(percent(rc.Pct), st))
		}
		cells = append(cells, cell(strconv.Itoa(r.Total), textStyle{centered: true}))
		tbl.With(row(false, cells...))
	}
	return tbl
}

// MatrixTable builds an intervention matrix with the level cell shaded by level.
func MatrixTable(rows []schema.MatrixRow) *Node {
	tbl := El("w:tbl").With(tableProps(), row(true,
		headerCell("Factor / Dimensión", 3000, fillHeader),
		headerCell("Nivel de Riesgo", 2000, fillHeader),
		headerCell("Acciones Recomendadas", 4351, fillHeader),
	))
	for _, r := range rows {
		fill, ok := riskFills[r.NivelRiesgo]
		if !ok {
			fill = fillWhite
		}
		tbl.With(row(false,
			cell(r.Factor, textStyle{width: 3000}),
			cell(string(r.NivelRiesgo), textStyle{width: 2000, fill: fill, centered: true}),
			cell(r.Acciones, textStyle{width: 4351}),
		))
	}
	return tbl
}

// PVETable builds the surveillance-program enrollment table. The last column
// is red on "Sí" and green otherwise.
func PVETable(rows []schema.PVERow) *Node {
	header := []*Node{}
	for _, h := range []string{"Resultados de la evaluación", "%", "Criterio para ingreso al PVE – FRP", "¿Requieren ingresar al PVE?"} {
		header = append(header, headerCell(h, 0, fillPVEHeader))
	}
	tbl := El("w:tbl").With(tableProps(), row(true, header...))
	for _, r := range rows {
		shade, color := "E0FFE0", "006600"
		if r.RequiereIngreso == "Sí" {
			shade, color = "FFE0E0", "CC0000"
		}
		tbl.With(row(false,
			cell(r.Evaluacion, textStyle{}),
			cell(r.Porcentaje, textStyle{centered: true}),
			cell(r.Criterio, textStyle{}),
			cell(r.RequiereIngreso, textStyle{fill: shade, centered: true, bold: true, color: color}),
		))
	}
	return tbl
}
