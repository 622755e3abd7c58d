// Package imaging connects the autocrop engine to real image files.
//
// It loads and caches decoded images, adapts them to autocrop.Raster, and
// acts on the bounds the engine returns: cropping, encoding the crop for
// transport, saving it to disk, and drawing a preview of the detected
// content rectangle. Coordinates use the standard image convention where
// (0,0) is the top-left corner, X grows rightward and Y grows downward.
//
// # Bounds
//
// The engine reports inclusive bounds (MinX..MaxX, MinY..MaxY). Everything
// handed to image libraries in this package is converted to a half-open
// image.Rectangle with autocrop.Bounds.Rect.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual operations are
// stateless and can be called concurrently on different images.
//
// # Saving
//
// Crops are only materialized when the bounds are strictly smaller than the
// image. The encoder follows the output file extension (PNG, JPEG, GIF, BMP,
// TIFF); unknown extensions are written as JPEG at the configured quality.
//
// # Performance Considerations
//
// Finding bounds costs O(width*height) in the worst case. For repeated
// operations on the same image, use ImageCache to avoid redundant disk reads,
// and Evict paths that have been overwritten.
package imaging
