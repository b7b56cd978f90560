package docx

import "strconv"

const (
	nsWordprocessingDrawing = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsDrawingML             = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPicture               = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsRelationships         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Image sizes in EMU.
const (
	EMUFull       int64 = 5_943_600
	EMUHalf       int64 = 2_895_600
	EMUHeightFull int64 = 3_200_000
	EMUHeightHalf int64 = 2_743_200
)

// inlineImage builds a run holding an inline picture. It uses the docPr ids
// id and id+1. Namespaces are declared locally so the run is valid in any part.
func inlineImage(relID string, cx, cy int64, id int, name string) *Node {
	w, h := strconv.FormatInt(cx, 10), strconv.FormatInt(cy, 10)
	return El("w:r").With(
		El("w:rPr"),
		El("w:drawing").With(
			El("wp:inline", "distT", "0", "distB", "0", "distL", "0", "distR", "0", "xmlns:wp", nsWordprocessingDrawing).With(
				El("wp:extent", "cx", w, "cy", h),
				El("wp:effectExtent", "l", "0", "t", "0", "r", "0", "b", "0"),
				El("wp:docPr", "id", strconv.Itoa(id), "name", name),
				El("wp:cNvGraphicFramePr").With(
					El("a:graphicFrameLocks", "xmlns:a", nsDrawingML, "noChangeAspect", "1"),
				),
				El("a:graphic", "xmlns:a", nsDrawingML).With(
					El("a:graphicData", "uri", nsPicture).With(
						El("pic:pic", "xmlns:pic", nsPicture).With(
							El("pic:nvPicPr").With(
								El("pic:cNvPr", "id", strconv.Itoa(id+1), "name", name),
								El("pic:cNvPicPr").With(El("a:picLocks", "noChangeAspect", "1")),
							),
							El("pic:blipFill").With(
								El("a:blip", "r:embed", relID, "xmlns:r", nsRelationships),
								El("a:stretch").With(El("a:fillRect")),
							),
							El("pic:spPr").With(
								El("a:xfrm").With(
									El("a:off", "x", "0", "y", "0"),
									El("a:ext", "cx", w, "cy", h),
								),
								El("a:prstGeom", "prst", "rect").With(El("a:avLst")),
							),
						),
					),
				),
			),
		),
	)
}
