package charts

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

var anchorNames = map[Anchor]string{
	AnchorStart:  "start",
	AnchorMiddle: "middle",
	AnchorEnd:    "end",
}

// SVG encodes the scene as a standalone SVG document.
func (s *Scene) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg" font-family="Arial, sans-serif">`, num(s.Width), num(s.Height))
	b.WriteByte('\n')
	for _, e := range s.Elements {
		b.WriteString("  ")
		switch el := e.(type) {
		case Rect:
			writeRect(&b, el)
		case Wedge:
			writeWedge(&b, el)
		case Text:
			writeText(&b, el)
		}
		b.WriteByte('\n')
	}
	b.WriteString("</svg>")
	return b.String()
}

func writeRect(b *strings.Builder, r Rect) {
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"`, num(r.X), num(r.Y), num(r.W), num(r.H), r.Fill)
	if r.Radius > 0 {
		fmt.Fprintf(b, ` rx="%s"`, num(r.Radius))
	}
	b.WriteString("/>")
}

func writeWedge(b *strings.Builder, w Wedge) {
	stroke := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%s"`, w.Fill, w.Stroke, num(w.StrokeWidth))
	sweep := w.End - w.Start
	// An arc whose endpoints coincide draws nothing, so a lone slice is a circle.
	if sweep >= 2*math.Pi-1e-9 {
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" %s/>`, num(w.CX), num(w.CY), num(w.R), stroke)
		return
	}
	largeArc := 0
	if sweep > math.Pi {
		largeArc = 1
	}
	x1, y1 := w.CX+w.R*math.Cos(w.Start), w.CY+w.R*math.Sin(w.Start)
	x2, y2 := w.CX+w.R*math.Cos(w.End), w.CY+w.R*math.Sin(w.End)
	fmt.Fprintf(b, `<path d="M %s %s L %s %s A %s %s 0 %d 1 %s %s Z" %s/>`,
		num(w.CX), num(w.CY), num(x1), num(y1), num(w.R), num(w.R), largeArc, num(x2), num(y2), stroke)
}

func writeText(b *strings.Builder, t Text) {
	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="%s" fill="%s"`, num(t.X), num(t.Y), num(t.Size), t.Fill)
	if t.Anchor != AnchorStart {
		fmt.Fprintf(b, ` text-anchor="%s"`, anchorNames[t.Anchor])
	}
	if t.Centered {
		b.WriteString(` dominant-baseline="middle"`)
	}
	if t.Bold {
		b.WriteString(` font-weight="bold"`)
	}
	b.WriteString(">")
	b.WriteString(xmlEscaper.Replace(t.Content))
	b.WriteString("</text>")
}
