package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"

	"github.com/anthonynsimon/bild/clone"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PreviewResult contains the source image with the detected bounds drawn on it.
type PreviewResult struct {
	BoundsResult

	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview finds the content bounds of img and outlines them in lineColorHex
// ("#RRGGBB"). The outline is drawn on the first and last content rows and
// columns, and the two inclusive corners are labeled with their coordinates.
func Preview(img image.Image, lineColorHex string, logger *log.Logger) (*PreviewResult, error) {
	lineColor, err := parseHexColor(lineColorHex)
	if err != nil {
		return nil, err
	}

	found, err := FindBounds(img, logger)
	if err != nil {
		return nil, err
	}

	canvas := clone.AsRGBA(img)
	origin := canvas.Bounds().Min
	b := found.Bounds

	for x := b.MinX; x <= b.MaxX; x++ {
		canvas.Set(origin.X+x, origin.Y+b.MinY, lineColor)
		canvas.Set(origin.X+x, origin.Y+b.MaxY, lineColor)
	}
	for y := b.MinY; y <= b.MaxY; y++ {
		canvas.Set(origin.X+b.MinX, origin.Y+y, lineColor)
		canvas.Set(origin.X+b.MaxX, origin.Y+y, lineColor)
	}

	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 180}
	topLeft := fmt.Sprintf("%d,%d", b.MinX, b.MinY)
	bottomRight := fmt.Sprintf("%d,%d", b.MaxX, b.MaxY)
	drawLabel(canvas, origin.X+b.MinX+2, origin.Y+b.MinY+2, topLeft, fg, bg)
	drawLabel(canvas, origin.X+b.MaxX-labelWidth(bottomRight)-1, origin.Y+b.MaxY-labelHeight-1, bottomRight, fg, bg)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &PreviewResult{
		BoundsResult: *found,
		ImageBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:     "image/png",
	}, nil
}

// parseHexColor parses "#RRGGBB" or "#RGB" into an opaque color.
func parseHexColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

const (
	glyphAdvance = 4
	labelHeight  = 6
)

// glyphs is a 3x5 pixel font for digits and the comma.
var glyphs = map[rune][5]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

func labelWidth(text string) int { return len(text) * glyphAdvance }

// drawLabel writes text with its top-left corner at (x, y) on a padded
// background box, clipped to the image.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	set := func(px, py int, c color.RGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetRGBA(px, py, c)
		}
	}

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth(text); dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		if glyph, ok := glyphs[ch]; ok {
			for row, line := range glyph {
				for col, bit := range line {
					if bit == '1' {
						set(cx+col, y+row, fg)
					}
				}
			}
		}
		cx += glyphAdvance
	}
}
