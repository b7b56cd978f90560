package docx

import "fmt"

const (
	nsWordprocessing = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	relTypeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"

	contentTypeDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	contentTypeHeader   = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	contentTypeRels     = "application/vnd.openxmlformats-package.relationships+xml"

	xmlProlog = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
)

func xmlPart(root *Node) []byte {
	return (&Node{Kind: DocumentNode}).With(&Node{Kind: RawNode, Data: xmlProlog}, root).Bytes()
}

func textParagraph(text string, bold bool, size int, centered bool) *Node {
	p := El("w:p")
	if centered {
		p.With(El("w:pPr").With(El("w:jc", "w:val", "center")))
	}
	rp := El("w:rPr")
	if bold {
		rp.With(El("w:b"))
	}
	rp.With(El("w:sz", "w:val", fmt.Sprint(size)))
	t := El("w:t")
	setRunText(t, text)
	return p.With(El("w:r").With(rp, t))
}

func heading(text string) *Node {
	return textParagraph(text, true, 28, false)
}

func body(text string) *Node {
	return textParagraph(text, false, 22, false)
}

func placeholder(text string) *Node {
	return textParagraph(text, false, 20, true)
}

// sideBySide lays two chart markers out in a borderless two-column table.
func sideBySide(left, right string) *Node {
	col := func(marker string) *Node {
		return El("w:tc").With(
			El("w:tcPr").With(El("w:tcW", "w:w", "4675", "w:type", "dxa")),
			placeholder(marker),
		)
	}
	return El("w:tbl").With(
		El("w:tblPr").With(El("w:tblW", "w:w", tableWidth, "w:type", "dxa"), El("w:jc", "w:val", "center")),
		El("w:tr").With(col(left), col(right)),
	)
}

func markers(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for _, s := range chartSlots[from-1 : to] {
		out = append(out, s.marker)
	}
	return out
}

// skeletonBody lays out every caption, marker and placeholder phrase the
// report filler looks for.
func skeletonBody() []*Node {
	nodes := []*Node{
		textParagraph("INFORME DE EVALUACIÓN DE FACTORES DE RIESGO PSICOSOCIAL", true, 32, true),
		textParagraph("NOMBRE DE LA EMPRESA CLIENTE", true, 28, true),
		textParagraph(templateNit, false, 22, true),
		textParagraph(templateReportDate, false, 22, true),

		heading("1. Introducción"),
		body("El presente informe recoge los resultados de la aplicación de la Batería de Instrumentos para la Evaluación de Factores de Riesgo Psicosocial en Nombre de la empresa cliente."),
		body("La evaluación se aplicó a 133 colaboradores (Forma A: 13 y Forma B: 120)."),

		heading("2. Características sociodemográficas"),
	}
	for _, m := range markers(1, 18) {
		nodes = append(nodes, placeholder(m))
	}
	nodes = append(nodes,
		body(ConclusionSexo),
		body(ConclusionEscolaridad),
		body(ConclusionContrato),

		heading("3. Factores de riesgo psicosocial intralaboral"),
		body(CaptionIntralaboral),
		sideBySide(chartSlots[18].marker, chartSlots[19].marker),
		body(ConclusionFormaA),
		body(ConclusionFormaB),
		body(CaptionDominios),
		body(ConclusionDominios),
		body(ConclusionIntralaboral),

		heading("4. Factores de riesgo psicosocial extralaboral"),
		body(CaptionExtralaboral),
		sideBySide(chartSlots[20].marker, chartSlots[21].marker),

		heading("5. Evaluación del estrés"),
		sideBySide(chartSlots[22].marker, chartSlots[23].marker),
		sideBySide(chartSlots[24].marker, chartSlots[25].marker),
		sideBySide(chartSlots[26].marker, chartSlots[27].marker),

		heading("6. Resultados generales"),
		body(CaptionGeneral),
		placeholder(chartSlots[28].marker),
		sideBySide(chartSlots[29].marker, chartSlots[30].marker),
		body(ConclusionIntraAreas),
		body(ConclusionExtralaboral),

		heading("7. Matrices de intervención"),
		body(CaptionMatrizIntra),
		body(CaptionMatrizExtra),

		heading("8. Programa de vigilancia epidemiológica"),
		PVETable(nil),
	)
	return nodes
}

// DefaultTemplate builds a minimal report template carrying every caption and
// chart marker. It is used when no template file is configured.
func DefaultTemplate() ([]byte, error) {
	sect := El("w:sectPr").With(
		El("w:headerReference", "w:type", "default", "r:id", "rId1"),
		El("w:pgSz", "w:w", "12240", "w:h", "15840"),
		El("w:pgMar", "w:top", "1440", "w:right", "1440", "w:bottom", "1440", "w:left", "1440", "w:header", "708", "w:footer", "708", "w:gutter", "0"),
	)
	document := El("w:document", "xmlns:w", nsWordprocessing, "xmlns:r", nsRelationships, "xmlns:wp", nsWordprocessingDrawing).With(
		El("w:body").With(append(skeletonBody(), sect)...),
	)
	header := El("w:hdr", "xmlns:w", nsWordprocessing, "xmlns:r", nsRelationships).With(
		textParagraph("Nombre de la empresa", false, 18, false),
	)
	types := El("Types", "xmlns", nsContentTypes).With(
		El("Default", "Extension", "rels", "ContentType", contentTypeRels),
		El("Default", "Extension", "xml", "ContentType", "application/xml"),
		El("Override", "PartName", "/"+partDocument, "ContentType", contentTypeDocument),
		El("Override", "PartName", "/word/header1.xml", "ContentType", contentTypeHeader),
	)
	rootRels := El("Relationships", "xmlns", nsPackageRels).With(
		El("Relationship", "Id", "rId1", "Type", relTypeDocument, "Target", partDocument),
	)
	docRels := El("Relationships", "xmlns", nsPackageRels).With(
		El("Relationship", "Id", "rId1", "Type", relTypeHeader, "Target", "header1.xml"),
	)

	pkg := &Package{}
	pkg.SetPart(partContentTypes, xmlPart(types))
	pkg.SetPart("_rels/.rels", xmlPart(rootRels))
	pkg.SetPart(partDocument, xmlPart(document))
	pkg.SetPart(partDocumentRels, xmlPart(docRels))
	pkg.SetPart("word/header1.xml", xmlPart(header))
	return pkg.Bytes()
}
