// Package autocrop finds the content rectangle of an image by trimming a
// uniform-colored border from its edges.
//
// The engine works on any Raster (width, height and a packed color query) and
// returns inclusive Bounds. It never decodes, encodes or mutates images; the
// imaging package adapts image.Image values to Raster and performs the crop.
//
// # Algorithm
//
// FindBounds repeats an X pass (left, then right) and a Y pass (top, then
// bottom) until a full iteration leaves the bounds unchanged. Each edge is
// measured by FindBorder:
//
//  1. FindBorderSize probes the two lines that run along the scan axis at the
//     secondary extremes, starting from the corner color. If the two corners
//     differ, or the probe never meets a different color, the edge has no
//     border and 0 is returned.
//  2. FindBorder then checks every pixel of the candidate strip and stops at
//     the first column (or row) holding a different color.
//
// The right (bottom) scan runs over the width (height) left after the left
// (top) trim has been applied. This ordering changes results on asymmetric
// borders and must not be split into independent computations.
//
// # Color Similarity
//
// Two colors are the same when each of red, green and blue differs by less
// than Tolerance. Alpha is ignored. The relation is symmetric but not
// transitive.
//
// # Thread Safety
//
// All functions are pure with respect to the raster and hold no shared state,
// so calls on different rasters may run concurrently.
package autocrop
