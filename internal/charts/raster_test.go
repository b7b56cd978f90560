package charts

import (
	"bytes"
	"context"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/huangsam/psicosocial/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizePNG(t *testing.T) {
	s := Pie([]schema.FrequencyItem{{Label: "A", Count: 2}, {Label: "B", Count: 1}}, 500, 320)
	data, err := RasterizePNG(s)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())

	// The corner is background and the pie center is painted.
	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
	r, g, b, _ = img.At(200, 160).RGBA()
	assert.NotEqual(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
}

func TestRasterizePNGRejectsEmptyScene(t *testing.T) {
	_, err := RasterizePNG(&Scene{})
	assert.Error(t, err)
}

func TestReportScenesCoverAllKeys(t *testing.T) {
	charts := ReportScenes(&schema.ReportData{})
	require.Len(t, charts, ChartCount)

	seen := map[ChartKey]bool{}
	for _, c := range charts {
		assert.False(t, seen[c.Key], "duplicate key %s", c.Key)
		seen[c.Key] = true
		assert.NotNil(t, c.Scene)
	}
}

func TestFindScene(t *testing.T) {
	data := &schema.ReportData{
		Demographics: schema.Demographics{Sexo: []schema.FrequencyItem{{Label: "Femenino", Count: 2}}},
	}

	s, ok := FindScene(data, ChartSexo)
	require.True(t, ok)
	assert.Contains(t, s.SVG(), ">Femenino")

	_, ok = FindScene(data, ChartKey("torta"))
	assert.False(t, ok)
}

func TestRenderAll(t *testing.T) {
	data := &schema.ReportData{
		Demographics: schema.Demographics{
			Sexo: []schema.FrequencyItem{{Label: "Femenino", Count: 3, Percentage: 0.75}, {Label: "Masculino", Count: 1, Percentage: 0.25}},
		},
		IntralaboralFormaA: []schema.RiskTableRow{{Factor: "Claridad de Rol", Alto: schema.RiskCount{Count: 1, Pct: 1}, Total: 1}},
	}

	var done atomic.Int32
	images, err := RenderAll(context.Background(), data, 4, func() { done.Add(1) })
	require.NoError(t, err)
	assert.Len(t, images, 31)
	assert.Equal(t, int32(31), done.Load())
	for key, img := range images {
		assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")), key)
	}
}

func TestRenderAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderAll(ctx, &schema.ReportData{}, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
