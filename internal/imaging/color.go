package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-autocrop-mcp/internal/autocrop"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor represents a non-premultiplied RGBA color with 8-bit components.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // "#RRGGBB" (no alpha)
	ARGB string    `json:"argb"` // packed "#AARRGGBB", as compared by the autocrop engine
	RGB  RGBColor  `json:"rgb"`
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SampleColor returns the color at (x, y).
//
// Coordinates are 0-based and relative to the image bounds' origin, so valid
// values are 0..width-1 and 0..height-1. Colors are reported
// non-premultiplied, matching what the autocrop engine compares.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	b := img.Bounds()
	if x < 0 || x >= b.Dx() || y < 0 || y >= b.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, b.Dx(), b.Dy())
	}
	res := newColorResult(img.At(b.Min.X+x, b.Min.Y+y))
	return &res, nil
}

func newColorResult(c color.Color) ColorResult {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	cf := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	h, s, l := cf.Hsl()

	return ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		ARGB: autocrop.ARGB(n.A, n.R, n.G, n.B).String(),
		RGB:  RGBColor{R: n.R, G: n.G, B: n.B},
		RGBA: RGBAColor{R: n.R, G: n.G, B: n.B, A: n.A},
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// LabeledPoint is a coordinate with an optional label echoed in results.
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledColorResult combines a color sample with its location and label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point, failing as a whole if any point is
// out of bounds.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	samples := make([]LabeledColorResult, 0, len(points))
	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		samples = append(samples, LabeledColorResult{Label: p.Label, X: p.X, Y: p.Y, Color: *c})
	}
	return &MultiColorResult{Samples: samples}, nil
}

// ChannelDelta holds signed per-channel differences (second minus first).
type ChannelDelta struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// ColorComparison reports whether two pixels count as the same border color.
type ColorComparison struct {
	First     ColorResult  `json:"first"`
	Second    ColorResult  `json:"second"`
	Delta     ChannelDelta `json:"delta"`
	Tolerance int          `json:"tolerance"`
	Same      bool         `json:"same"`
}

// CompareColors samples two pixels and applies autocrop.IsSameColor to them.
func CompareColors(img image.Image, a, b Point) (*ColorComparison, error) {
	first, err := SampleColor(img, a.X, a.Y)
	if err != nil {
		return nil, fmt.Errorf("first point: %w", err)
	}
	second, err := SampleColor(img, b.X, b.Y)
	if err != nil {
		return nil, fmt.Errorf("second point: %w", err)
	}

	ca := autocrop.RGB(first.RGB.R, first.RGB.G, first.RGB.B)
	cb := autocrop.RGB(second.RGB.R, second.RGB.G, second.RGB.B)

	return &ColorComparison{
		First:  *first,
		Second: *second,
		Delta: ChannelDelta{
			R: int(cb.R()) - int(ca.R()),
			G: int(cb.G()) - int(ca.G()),
			B: int(cb.B()) - int(ca.B()),
		},
		Tolerance: autocrop.Tolerance,
		Same:      autocrop.IsSameColor(ca, cb),
	}, nil
}
