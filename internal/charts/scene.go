// Package charts renders report charts as SVG markup and PNG images.
package charts

import (
	"fmt"
	"math"

	"github.com/huangsam/psicosocial/core/algo"
	"github.com/huangsam/psicosocial/schema"
)

// Anchor is the horizontal alignment of a text element.
type Anchor int

// Text anchors, matching SVG text-anchor.
const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Element is one drawable primitive of a scene.
type Element interface {
	isElement()
}

// Rect is a filled rectangle with optional rounded corners.
type Rect struct {
	X, Y, W, H float64
	Radius     float64
	Fill       string
}

// Wedge is a pie slice from angle Start to End (radians, clockwise from +x).
type Wedge struct {
	CX, CY, R   float64
	Start, End  float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Text is a single line of text. Y is the baseline unless Centered is set, in
// which case Y is the vertical middle of the line.
type Text struct {
	X, Y     float64
	Content  string
	Size     float64
	Bold     bool
	Fill     string
	Anchor   Anchor
	Centered bool
}

func (Rect) isElement()  {}
func (Wedge) isElement() {}
func (Text) isElement()  {}

// Scene is a chart described as primitives, independent of output format.
type Scene struct {
	Width, Height float64
	Elements      []Element
}

func (s *Scene) add(e ...Element) {
	s.Elements = append(s.Elements, e...)
}

func newScene(width, height float64) *Scene {
	s := &Scene{Width: width, Height: height}
	s.add(Rect{W: width, H: height, Fill: colorBackground})
	return s
}

// Placeholder is the "Sin datos" scene drawn for empty input.
func Placeholder(width, height float64) *Scene {
	s := newScene(width, height)
	s.add(Text{X: width / 2, Y: height / 2, Content: schema.SinDatos, Size: 14, Fill: colorPlaceholder, Anchor: AnchorMiddle})
	return s
}

// truncate cuts labels longer than limit runes down to keep runes plus an ellipsis.
func truncate(label string, limit, keep int) string {
	r := []rune(label)
	if len(r) > limit {
		return string(r[:keep]) + "…"
	}
	return label
}

// Pie geometry.
const (
	pieCenterX       = 160.0
	pieInset         = 20.0
	pieLabelRadius   = 0.65
	pieLabelMinShare = 0.04
	pieDarkShare     = 0.3
	pieLegendStep    = 22.0
)

// Pie builds a proportion chart. Slices follow input order and items with a
// zero count are skipped. Slice percentages at or below 4% are not labelled.
func Pie(items []schema.FrequencyItem, width, height float64) *Scene {
	var filtered []schema.FrequencyItem
	total := 0
	for _, it := range items {
		if it.Count > 0 {
			filtered = append(filtered, it)
			total += it.Count
		}
	}
	if len(filtered) == 0 {
		return Placeholder(width, height)
	}

	s := newScene(width, height)
	cx, cy := pieCenterX, height/2
	r := math.Min(cx, cy) - pieInset
	start := -math.Pi / 2

	var labels, legend []Element
	for i, it := range filtered {
		pct := float64(it.Count) / float64(total)
		sweep := pct * 2 * math.Pi
		end := start + sweep
		color := ColorFor(it.Label, i)

		s.add(Wedge{CX: cx, CY: cy, R: r, Start: start, End: end, Fill: color, Stroke: colorWhite, StrokeWidth: 1.5})

		if pct > pieLabelMinShare {
			mid := start + sweep/2
			fill := "#222"
			if pct > pieDarkShare {
				fill = colorWhite
			}
			labels = append(labels, Text{
				X:        cx + r*pieLabelRadius*math.Cos(mid),
				Y:        cy + r*pieLabelRadius*math.Sin(mid),
				Content:  fmt.Sprintf("%.1f%%", pct*100),
				Size:     11,
				Bold:     true,
				Fill:     fill,
				Anchor:   AnchorMiddle,
				Centered: true,
			})
		}

		ly := 20 + float64(i)*pieLegendStep
		legend = append(legend,
			Rect{X: cx*2 + 20, Y: ly, W: 14, H: 14, Fill: color},
			Text{X: cx*2 + 40, Y: ly + 12, Content: fmt.Sprintf("%s (%.1f%%)", truncate(it.Label, 28, 26), pct*100), Size: 11, Fill: colorLabel},
		)
		start = end
	}
	s.add(labels...)
	s.add(legend...)
	return s
}

// Horizontal bar geometry.
const (
	barMaxItems    = 12
	barMarginLeft  = 200.0
	barMarginRight = 80.0
	barHeight      = 24.0
	barGap         = 12.0
	barTop         = 50.0
	barMinHeight   = 250.0
)

// BarHeight is the natural height of a bar chart with n items.
func BarHeight(n int) float64 {
	return math.Max(barMinHeight, float64(n)*(barHeight+barGap)+80)
}

// Bar builds a horizontal bar chart of at most 12 items, largest count first.
// Bars are scaled to the largest count.
func Bar(items []schema.FrequencyItem, title string, width float64) *Scene {
	var nonZero []schema.FrequencyItem
	for _, it := range items {
		if it.Count > 0 {
			nonZero = append(nonZero, it)
		}
	}
	top := algo.RankFrequencies(nonZero, barMaxItems)
	height := BarHeight(len(top))
	if len(top) == 0 {
		return Placeholder(width, height)
	}

	s := newScene(width, height)
	if title != "" {
		s.add(Text{X: width / 2, Y: 24, Content: title, Size: 13, Bold: true, Fill: colorTitle, Anchor: AnchorMiddle})
	}

	maxCount := top[0].Count
	span := width - barMarginLeft - barMarginRight
	for i, it := range top {
		y := barTop + float64(i)*(barHeight+barGap)
		bw := float64(it.Count) / float64(maxCount) * span
		s.add(
			Text{X: barMarginLeft - 6, Y: y + barHeight/2 + 4, Content: truncate(it.Label, 26, 24), Size: 11, Fill: colorLabel, Anchor: AnchorEnd},
			Rect{X: barMarginLeft, Y: y, W: bw, H: barHeight, Radius: 2, Fill: ColorFor("", i)},
			Text{X: barMarginLeft + bw + 4, Y: y + barHeight/2 + 4, Content: fmt.Sprintf("%d (%.1f%%)", it.Count, it.Percentage*100), Size: 11, Fill: colorValue},
		)
	}
	return s
}

// Stacked risk bar geometry.
const (
	riskMarginLeft  = 260.0
	riskMarginRight = 20.0
	riskBarHeight   = 20.0
	riskBarGap      = 12.0
	riskTop         = 70.0
	riskMinHeight   = 300.0
	riskMinLabelW   = 28.0
)

// RiskBarHeight is the natural height of a stacked risk chart with n rows.
func RiskBarHeight(n int) float64 {
	return math.Max(riskMinHeight, float64(n)*(riskBarHeight+riskBarGap)+100)
}

// RiskBar builds one stacked bar per factor with the five level shares in
// ascending order. Segments narrower than 28px carry no percentage label.
func RiskBar(rows []schema.RiskTableRow, title string, width float64) *Scene {
	height := RiskBarHeight(len(rows))
	if len(rows) == 0 {
		return Placeholder(width, height)
	}

	s := newScene(width, height)
	if title != "" {
		s.add(Text{X: width / 2, Y: 22, Content: title, Size: 12, Bold: true, Fill: colorTitle, Anchor: AnchorMiddle})
	}

	span := width - riskMarginLeft - riskMarginRight
	for i, row := range rows {
		y := riskTop + float64(i)*(riskBarHeight+riskBarGap)
		total := float64(max(row.Total, 1))
		s.add(Text{X: riskMarginLeft - 6, Y: y + riskBarHeight/2 + 4, Content: truncate(row.Factor, 32, 30), Size: 9.5, Fill: colorLabel, Anchor: AnchorEnd})

		x := riskMarginLeft
		for li, rc := range row.Counts() {
			share := float64(rc.Count) / total
			w := share * span
			if w <= 0 {
				continue
			}
			level := schema.RiskLevels[li]
			s.add(Rect{X: x, Y: y, W: w, H: riskBarHeight, Fill: RiskColor(level)})
			if w > riskMinLabelW {
				fill := colorWhite
				if level == schema.RiesgoMedio {
					fill = colorDarkText
				}
				s.add(Text{X: x + w/2, Y: y + riskBarHeight/2 + 4, Content: fmt.Sprintf("%.0f%%", share*100), Size: 9, Fill: fill, Anchor: AnchorMiddle})
			}
			x += w
		}
	}

	legendY := height - 30
	step := (width - riskMarginLeft) / float64(len(schema.RiskLevels))
	for i, level := range schema.RiskLevels {
		lx := riskMarginLeft + float64(i)*step
		s.add(
			Rect{X: lx, Y: legendY, W: 12, H: 12, Fill: RiskColor(level)},
			Text{X: lx + 16, Y: legendY + 10, Content: level.ShortLabel(), Size: 9, Fill: colorValue},
		)
	}
	return s
}
