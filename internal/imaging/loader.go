package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache holds decoded images keyed by the path they were loaded from.
// It is safe for concurrent use.
//
// Entries live until evicted. Savers evict the paths they write, and batch
// runs evict every source once it has been handled, so a long-lived server
// only keeps the images a client is still inspecting.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cachedImage
}

type cachedImage struct {
	img image.Image

	// format is the decoder name reported by image.Decode.
	format string
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{entries: make(map[string]cachedImage)}
}

// Load returns the decoded image at path, reading the file on first use.
// Paths are used verbatim as keys.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return e, nil
	}

	e, err := decodeFile(path)
	if err != nil {
		return cachedImage{}, err
	}

	c.mu.Lock()
	c.entries[path] = e
	c.mu.Unlock()
	return e, nil
}

func decodeFile(path string) (cachedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return cachedImage{img: img, format: format}, nil
}

// Evict drops path from the cache. The next Load reads the file again.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Len is the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ImageInfo is the image_load result.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoder that read the file ("png", "jpeg", "gif", "bmp",
	// "tiff" or "webp"), whatever the file extension says.
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`
	HasAlpha   bool   `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path into the cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	depth, alpha := describeModel(e.img.ColorModel())
	b := e.img.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        e.format,
		ColorDepth:    depth,
		HasAlpha:      alpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// describeModel reports the channel depth of a color model and whether it
// carries alpha. Paletted and YCbCr models count as 8-bit without alpha.
func describeModel(m color.Model) (depth string, alpha bool) {
	switch m {
	case color.RGBAModel, color.NRGBAModel, color.AlphaModel:
		return "8-bit", true
	case color.RGBA64Model, color.NRGBA64Model, color.Alpha16Model:
		return "16-bit", true
	case color.Gray16Model:
		return "16-bit", false
	}
	return "8-bit", false
}

// DimensionsResult is the image_dimensions result.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads path into the cache and returns its size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &DimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
}
