package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img1.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", b.Dx(), b.Dy())
	}

	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_Errors(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(invalid, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", "/nonexistent/path/to/image.png"},
		{"invalid data", invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewImageCache().Load(tt.path); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}

func TestImageCache_EvictReloads(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 20, 20, color.RGBA{0, 0, 255, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Replace the file on disk; the cache keeps serving the old image
	// until the path is evicted.
	replacement := writeImageFile(t, "replacement.png", createInMemoryImage(10, 5, color.RGBA{0, 255, 0, 255}))
	data, err := os.ReadFile(replacement)
	if err != nil {
		t.Fatalf("failed to read replacement: %v", err)
	}
	if err := os.WriteFile(imgPath, data, 0o644); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}

	stale, _ := cache.Load(imgPath)
	if stale.Bounds().Dx() != 20 {
		t.Fatalf("expected cached 20px image, got %dpx", stale.Bounds().Dx())
	}

	cache.Evict(imgPath)
	fresh, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if fresh.Bounds().Dx() != 10 || fresh.Bounds().Dy() != 5 {
		t.Errorf("after Evict: got %dx%d, want 10x5", fresh.Bounds().Dx(), fresh.Bounds().Dy())
	}

	cache.Evict("/nonexistent/path")
}

func TestImageCache_Len(t *testing.T) {
	cache := NewImageCache()
	a := createTestImage(t, 10, 10, color.RGBA{0, 255, 0, 255})
	b := createTestImage(t, 12, 12, color.RGBA{0, 0, 255, 255})

	for _, p := range []string{a, b, a} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if n := cache.Len(); n != 2 {
		t.Errorf("Len after loads: got %d, want 2", n)
	}

	cache.Evict(a)
	if n := cache.Len(); n != 1 {
		t.Errorf("Len after Evict: got %d, want 1", n)
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}

	if _, err := LoadImageInfo(cache, "/nonexistent/image.png"); err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestLoadImageInfo_FormatFromContent(t *testing.T) {
	// PNG bytes behind a .jpg name.
	path := writeImageFile(t, "mislabeled.jpg", createInMemoryImage(8, 8, color.White))

	info, err := LoadImageInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
}

func TestDescribeModel(t *testing.T) {
	tests := []struct {
		name  string
		img   image.Image
		depth string
		alpha bool
	}{
		{"rgba", image.NewRGBA(image.Rect(0, 0, 1, 1)), "8-bit", true},
		{"nrgba64", image.NewNRGBA64(image.Rect(0, 0, 1, 1)), "16-bit", true},
		{"gray", image.NewGray(image.Rect(0, 0, 1, 1)), "8-bit", false},
		{"gray16", image.NewGray16(image.Rect(0, 0, 1, 1)), "16-bit", false},
		{"paletted", image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black}), "8-bit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth, alpha := describeModel(tt.img.ColorModel())
			if depth != tt.depth || alpha != tt.alpha {
				t.Errorf("got (%s, %v), want (%s, %v)", depth, alpha, tt.depth, tt.alpha)
			}
		})
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	imgPath := writeImageFile(t, "dims.png", image.NewGray(image.Rect(0, 0, 300, 200)))

	dims, err := GetDimensions(cache, imgPath)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("dimensions: got %dx%d, want 300x200", dims.Width, dims.Height)
	}

	if _, err := GetDimensions(cache, "/nonexistent/image.png"); err == nil {
		t.Error("GetDimensions should fail for non-existent file")
	}
}
