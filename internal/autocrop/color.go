package autocrop

import "fmt"

// Tolerance is the exclusive per-channel difference under which two colors
// are considered the same.
const Tolerance = 5

// Color is a packed 0xAARRGGBB pixel value.
type Color uint32

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xff, r, g, b)
}

// ARGB packs a color with an explicit alpha channel.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// String formats the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// IsSameColor reports whether a and b differ by less than Tolerance in each
// of the red, green and blue channels.
func IsSameColor(a, b Color) bool {
	return channelClose(a.R(), b.R()) &&
		channelClose(a.G(), b.G()) &&
		channelClose(a.B(), b.B())
}

func channelClose(a, b uint8) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d < Tolerance
}
