package charts

import "github.com/huangsam/psicosocial/schema"

// riskColors gives every risk level a fixed color, from green to red.
var riskColors = map[string]string{
	string(schema.SinRiesgo):     "#1a9641",
	string(schema.RiesgoBajo):    "#a6d96a",
	string(schema.RiesgoMedio):   "#ffffbf",
	string(schema.RiesgoAlto):    "#fdae61",
	string(schema.RiesgoMuyAlto): "#d73027",
}

// categoryColors are assigned by position to labels that are not risk levels.
var categoryColors = [...]string{
	"#003f88", "#0077b6", "#00b4d8", "#48cae4", "#90e0ef",
	"#1a9641", "#a6d96a", "#fdae61", "#d73027", "#7b2d8b",
}

// ColorFor returns the color of a risk level label, or the positional
// category color for any other label.
func ColorFor(label string, index int) string {
	if c, ok := riskColors[label]; ok {
		return c
	}
	return categoryColors[index%len(categoryColors)]
}

// RiskColor returns the color of a level.
func RiskColor(level schema.RiskLevel) string {
	return riskColors[string(level)]
}

const (
	colorBackground  = "#ffffff"
	colorPlaceholder = "#666"
	colorTitle       = "#222"
	colorLabel       = "#333"
	colorValue       = "#444"
	colorDarkText    = "#555"
	colorWhite       = "#ffffff"
)
