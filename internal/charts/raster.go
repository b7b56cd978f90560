package charts

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontsOnce    sync.Once
	regularFont  *opentype.Font
	boldFont     *opentype.Font
	fontsLoadErr error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontsLoadErr = opentype.Parse(goregular.TTF); fontsLoadErr != nil {
			return
		}
		boldFont, fontsLoadErr = opentype.Parse(gobold.TTF)
	})
	return fontsLoadErr
}

type faceKey struct {
	size float64
	bold bool
}

// faceSet caches font faces for a single rasterization. Faces are not safe
// for concurrent use, so sets are never shared between goroutines.
type faceSet map[faceKey]font.Face

func (fs faceSet) get(size float64, bold bool) (font.Face, error) {
	key := faceKey{size, bold}
	if f, ok := fs[key]; ok {
		return f, nil
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	fs[key] = f
	return f, nil
}

func (fs faceSet) close() {
	for _, f := range fs {
		_ = f.Close()
	}
}

var anchorX = map[Anchor]float64{
	AnchorStart:  0,
	AnchorMiddle: 0.5,
	AnchorEnd:    1,
}

// RasterizePNG draws the scene at its own pixel size and encodes it as PNG.
func RasterizePNG(s *Scene) ([]byte, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("failed to load chart fonts: %w", err)
	}
	w, h := int(math.Ceil(s.Width)), int(math.Ceil(s.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	faces := faceSet{}
	defer faces.close()

	for _, e := range s.Elements {
		switch el := e.(type) {
		case Rect:
			dc.SetHexColor(el.Fill)
			if el.Radius > 0 {
				dc.DrawRoundedRectangle(el.X, el.Y, el.W, el.H, el.Radius)
			} else {
				dc.DrawRectangle(el.X, el.Y, el.W, el.H)
			}
			dc.Fill()
		case Wedge:
			if el.End-el.Start >= 2*math.Pi-1e-9 {
				dc.DrawCircle(el.CX, el.CY, el.R)
			} else {
				dc.MoveTo(el.CX, el.CY)
				dc.DrawArc(el.CX, el.CY, el.R, el.Start, el.End)
				dc.ClosePath()
			}
			dc.SetHexColor(el.Fill)
			dc.FillPreserve()
			dc.SetHexColor(el.Stroke)
			dc.SetLineWidth(el.StrokeWidth)
			dc.Stroke()
		case Text:
			face, err := faces.get(el.Size, el.Bold)
			if err != nil {
				return nil, fmt.Errorf("failed to create font face: %w", err)
			}
			dc.SetFontFace(face)
			dc.SetHexColor(el.Fill)
			ay := 0.0
			if el.Centered {
				ay = 0.35
			}
			dc.DrawStringAnchored(el.Content, el.X, el.Y, anchorX[el.Anchor], ay)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
