package autocrop

import "log"

// Raster is the read-only pixel source the engine scans.
//
// Width and Height must be positive. ColorAt is only called with
// 0 <= x < Width() and 0 <= y < Height().
type Raster interface {
	Width() int
	Height() int
	ColorAt(x, y int) Color
}

// Result is the outcome of a Converge call.
type Result struct {
	// Bounds is the fixed point: the content rectangle.
	Bounds Bounds `json:"bounds"`

	// Steps holds the bounds after each iteration, in order. The last entry
	// equals Bounds.
	Steps []Bounds `json:"steps"`
}

// Iterations is the number of X-then-Y passes that ran.
func (r Result) Iterations() int { return len(r.Steps) }

// Converger trims borders until the bounds stop changing.
//
// The zero value is ready to use.
type Converger struct {
	// Logger receives per-iteration and per-scan traces. Nil disables them.
	Logger *log.Logger
}

// FindBounds returns the content rectangle of r.
func FindBounds(r Raster) Bounds {
	var c Converger
	return c.Converge(r).Bounds
}

// Converge runs X and Y passes over r until a whole iteration leaves the
// bounds unchanged.
func (c *Converger) Converge(r Raster) Result {
	bounds := FullBounds(r.Width(), r.Height())
	var steps []Bounds
	for {
		bx := c.trimX(r, bounds)
		c.logf("%v -> %v", bounds, bx)
		by := c.trimY(r, bx)
		c.logf("%v -> %v", bx, by)
		steps = append(steps, by)
		if by == bounds {
			return Result{Bounds: by, Steps: steps}
		}
		bounds = by
	}
}

// trimX trims the left edge, then the right edge over the remaining width.
func (c *Converger) trimX(r Raster, b Bounds) Bounds {
	minX, maxX := b.MinX, b.MaxX
	span := b.MaxY - b.MinY
	minX += c.scan(maxX-minX, span, edgeSampler{r: r, x: minX, y: b.MinY, dir: 1})
	maxX -= c.scan(maxX-minX, span, edgeSampler{r: r, x: maxX, y: b.MinY, dir: -1})
	return Bounds{MinX: minX, MinY: b.MinY, MaxX: maxX, MaxY: b.MaxY}
}

// trimY trims the top edge, then the bottom edge over the remaining height.
func (c *Converger) trimY(r Raster, b Bounds) Bounds {
	minY, maxY := b.MinY, b.MaxY
	span := b.MaxX - b.MinX
	minY += c.scan(maxY-minY, span, edgeSampler{r: r, x: b.MinX, y: minY, dir: 1, vertical: true})
	maxY -= c.scan(maxY-minY, span, edgeSampler{r: r, x: b.MinX, y: maxY, dir: -1, vertical: true})
	return Bounds{MinX: b.MinX, MinY: minY, MaxX: b.MaxX, MaxY: maxY}
}

// scan measures one edge, tracing the scan when a logger is set.
func (c *Converger) scan(scanSize, secondarySize int, s Sampler) int {
	if c.Logger == nil {
		return FindBorder(scanSize, secondarySize, s)
	}
	return findBorder(scanSize, secondarySize, s, c.Logger)
}

func (c *Converger) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

// edgeSampler anchors a Sampler at (x, y). The primary offset advances by
// dir along X, or along Y when vertical is set; the secondary offset always
// advances forward on the other axis.
type edgeSampler struct {
	r        Raster
	x, y     int
	dir      int
	vertical bool
}

func (s edgeSampler) At(primary, secondary int) Color {
	if s.vertical {
		return s.r.ColorAt(s.x+secondary, s.y+s.dir*primary)
	}
	return s.r.ColorAt(s.x+s.dir*primary, s.y+secondary)
}
