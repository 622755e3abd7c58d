package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-autocrop-mcp/internal/autocrop"
)

// Raster exposes a decoded image to the autocrop engine.
//
// The pixels are copied once into a non-premultiplied NRGBA buffer whose
// origin is (0,0), so ColorAt is a bounds-free slice read and transparent
// pixels keep their straight RGB values.
type Raster struct {
	pix *image.NRGBA
}

// NewRaster copies img into a Raster. Images with a zero width or height are
// rejected since the engine is only defined for positive dimensions.
func NewRaster(img image.Image) (*Raster, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}
	return &Raster{pix: imaging.Clone(img)}, nil
}

// Width returns the image width in pixels.
func (r *Raster) Width() int { return r.pix.Rect.Dx() }

// Height returns the image height in pixels.
func (r *Raster) Height() int { return r.pix.Rect.Dy() }

// ColorAt returns the packed color at (x, y), relative to the top-left corner.
func (r *Raster) ColorAt(x, y int) autocrop.Color {
	i := y*r.pix.Stride + x*4
	p := r.pix.Pix[i : i+4 : i+4]
	return autocrop.ARGB(p[3], p[0], p[1], p[2])
}
