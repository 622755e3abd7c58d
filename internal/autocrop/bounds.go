package autocrop

import (
	"fmt"
	"image"
)

// Bounds is an inclusive pixel rectangle.
//
// A valid Bounds for a width x height raster satisfies
// 0 <= MinX <= MaxX <= width-1 and 0 <= MinY <= MaxY <= height-1.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// FullBounds returns the rectangle covering a whole width x height raster.
func FullBounds(width, height int) Bounds {
	return Bounds{MinX: 0, MinY: 0, MaxX: width - 1, MaxY: height - 1}
}

// Width is the number of columns inside the bounds.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height is the number of rows inside the bounds.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Area is Width * Height.
func (b Bounds) Area() int { return b.Width() * b.Height() }

// Rect converts the bounds to a half-open image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1)
}

// ShouldCrop reports whether the bounds are strictly smaller than a
// width x height raster, i.e. whether materializing a crop is warranted.
func (b Bounds) ShouldCrop(width, height int) bool {
	return b.MinX > 0 || b.MinY > 0 || b.MaxX < width-1 || b.MaxY < height-1
}

func (b Bounds) String() string {
	return fmt.Sprintf("Bounds(minX=%d, minY=%d, maxX=%d, maxY=%d)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}
