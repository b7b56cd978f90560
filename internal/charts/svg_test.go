package charts

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneSVGIsWellFormed(t *testing.T) {
	scenes := map[string]*Scene{
		"pie":         Pie([]schema.FrequencyItem{{Label: "A & B", Count: 3}, {Label: "<C>", Count: 1}}, 500, 320),
		"bar":         Bar([]schema.FrequencyItem{{Label: `"quoted"`, Count: 2, Percentage: 1}}, "Título", 550),
		"risk":        RiskBar([]schema.RiskTableRow{{Factor: "X", Alto: schema.RiskCount{Count: 1}, Total: 1}}, "", 700),
		"placeholder": Placeholder(550, 250),
	}

	for name, s := range scenes {
		t.Run(name, func(t *testing.T) {
			svg := s.SVG()
			assert.True(t, strings.HasPrefix(svg, `<svg width=`))
			dec := xml.NewDecoder(strings.NewReader(svg))
			for {
				_, err := dec.Token()
				if err != nil {
					require.ErrorContains(t, err, "EOF")
					break
				}
			}
		})
	}
}

func TestSceneSVGEscapesText(t *testing.T) {
	svg := Pie([]schema.FrequencyItem{{Label: "A & <B>", Count: 1}}, 500, 320).SVG()
	assert.Contains(t, svg, "A &amp; &lt;B&gt;")
	assert.NotContains(t, svg, "A & <B>")
}

func TestSingleSliceIsCircle(t *testing.T) {
	svg := Pie([]schema.FrequencyItem{{Label: "Todos", Count: 7}}, 500, 320).SVG()
	assert.Contains(t, svg, `<circle cx="160" cy="160" r="140"`)
	assert.NotContains(t, svg, "<path")
}

func TestWedgePath(t *testing.T) {
	svg := Pie([]schema.FrequencyItem{{Label: "a", Count: 3}, {Label: "b", Count: 1}}, 500, 320).SVG()
	// Three quarters starting at 12 o'clock needs the large-arc flag.
	assert.Contains(t, svg, `<path d="M 160 160 L 160 20 A 140 140 0 1 1 20 160 Z"`)
	assert.Contains(t, svg, `A 140 140 0 0 1 160 20 Z"`)
}
