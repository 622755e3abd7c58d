package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-autocrop-mcp/internal/autocrop"
)

// BoundsResult describes the content rectangle found in an image.
type BoundsResult struct {
	// Width and Height are the source image dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Bounds is the inclusive content rectangle.
	Bounds autocrop.Bounds `json:"bounds"`

	// ContentWidth and ContentHeight are the dimensions of Bounds.
	ContentWidth  int `json:"content_width"`
	ContentHeight int `json:"content_height"`

	// ShouldCrop is false when Bounds cover the whole image.
	ShouldCrop bool `json:"should_crop"`

	// Iterations is the number of X-then-Y passes the engine ran, and Steps
	// the bounds after each of them.
	Iterations int               `json:"iterations"`
	Steps      []autocrop.Bounds `json:"steps,omitempty"`
}

// FindBounds runs the autocrop engine over img. A nil logger disables the
// engine's traces.
func FindBounds(img image.Image, logger *log.Logger) (*BoundsResult, error) {
	r, err := NewRaster(img)
	if err != nil {
		return nil, err
	}

	c := autocrop.Converger{Logger: logger}
	res := c.Converge(r)
	w, h := r.Width(), r.Height()

	return &BoundsResult{
		Width:         w,
		Height:        h,
		Bounds:        res.Bounds,
		ContentWidth:  res.Bounds.Width(),
		ContentHeight: res.Bounds.Height(),
		ShouldCrop:    res.Bounds.ShouldCrop(w, h),
		Iterations:    res.Iterations(),
		Steps:         res.Steps,
	}, nil
}

// CropToBounds copies the inclusive bounds out of img. Bounds are relative
// to the image origin.
func CropToBounds(img image.Image, b autocrop.Bounds) *image.NRGBA {
	return imaging.Crop(img, b.Rect().Add(img.Bounds().Min))
}

// CropResult contains an encoded image.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// AutoCropResult is the outcome of AutoCrop.
type AutoCropResult struct {
	BoundsResult

	// Cropped reports whether the returned image is a crop. When false the
	// image is the (optionally scaled) original.
	Cropped bool `json:"cropped"`

	Image CropResult `json:"image"`
}

// AutoCrop finds the content bounds of img and returns the cropped image as
// base64 PNG. No crop is made when the bounds cover the whole image. A
// positive scale other than 1 resizes the output with Lanczos resampling.
func AutoCrop(img image.Image, scale float64, logger *log.Logger) (*AutoCropResult, error) {
	found, err := FindBounds(img, logger)
	if err != nil {
		return nil, err
	}

	out := img
	if found.ShouldCrop {
		out = CropToBounds(img, found.Bounds)
	}

	encoded, err := encodePNG(out, scale)
	if err != nil {
		return nil, err
	}

	return &AutoCropResult{
		BoundsResult: *found,
		Cropped:      found.ShouldCrop,
		Image:        *encoded,
	}, nil
}

// Crop extracts the half-open region (x1,y1)-(x2,y2) from an image. It lets
// callers adjust detected bounds by hand before materializing a crop.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	b := img.Bounds()
	if x1 < 0 || y1 < 0 || x2 > b.Dx() || y2 > b.Dy() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			x1, y1, x2, y2, b.Dx(), b.Dy())
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2).Add(b.Min))
	return encodePNG(cropped, scale)
}

func encodePNG(img image.Image, scale float64) (*CropResult, error) {
	if scale != 1.0 && scale > 0 {
		w := int(float64(img.Bounds().Dx()) * scale)
		h := int(float64(img.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %.3f leaves no pixels", scale)
		}
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &CropResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
