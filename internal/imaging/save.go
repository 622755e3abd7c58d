package imaging

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
	"golang.org/x/image/tiff"

	"github.com/ironsheep/image-autocrop-mcp/internal/autocrop"
)

// DefaultQuality is the lossy encoder quality used when none is configured.
const DefaultQuality = 95

// SaveResult reports what SaveAutoCrop did for one file.
type SaveResult struct {
	Path       string          `json:"path"`
	OutputPath string          `json:"output_path,omitempty"`
	Bounds     autocrop.Bounds `json:"bounds"`

	// Cropped is false when the image had no border; nothing is written then.
	Cropped bool   `json:"cropped"`
	Format  string `json:"format,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Bytes   int64  `json:"bytes,omitempty"`
}

// SaveOptions controls how crops are written.
type SaveOptions struct {
	// Quality is the JPEG quality (1-100). Zero means DefaultQuality.
	Quality int

	// Logger receives engine traces and save notices. Nil disables them.
	Logger *log.Logger
}

// SaveAutoCrop crops the image at path to its content bounds and writes it
// to outputPath, or over path when outputPath is empty. Images without a
// border are left untouched. The written path is evicted from the cache.
func SaveAutoCrop(cache *ImageCache, path, outputPath string, opts SaveOptions) (*SaveResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	found, err := FindBounds(img, opts.Logger)
	if err != nil {
		return nil, err
	}

	res := &SaveResult{
		Path:   path,
		Bounds: found.Bounds,
		Width:  found.Width,
		Height: found.Height,
	}
	if !found.ShouldCrop {
		return res, nil
	}

	if outputPath == "" {
		outputPath = path
	}
	cropped := CropToBounds(img, found.Bounds)
	format, err := writeImage(outputPath, cropped, opts.Quality)
	if err != nil {
		return nil, err
	}
	cache.Evict(outputPath)

	stat, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat output: %w", err)
	}
	if opts.Logger != nil {
		opts.Logger.Printf("saved %s (%dx%d -> %dx%d) to %s", path,
			found.Width, found.Height, found.ContentWidth, found.ContentHeight, outputPath)
	}

	res.OutputPath = outputPath
	res.Cropped = true
	res.Format = format
	res.Width = found.ContentWidth
	res.Height = found.ContentHeight
	res.Bytes = stat.Size()
	return res, nil
}

// writeImage encodes img according to the extension of path and returns the
// format name used.
func writeImage(path string, img image.Image, quality int) (string, error) {
	enc, format := encoderFor(path, quality)
	if err := imgio.Save(path, img, enc); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return format, nil
}

// encoderFor picks an encoder from the file extension. Extensions without an
// encoder (including .webp) fall back to JPEG.
func encoderFor(path string, quality int) (imgio.Encoder, string) {
	if quality <= 0 {
		quality = DefaultQuality
	}

	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return imgio.JPEGEncoder(quality), "jpeg"
	}

	switch f {
	case imaging.PNG:
		return imgio.PNGEncoder(), "png"
	case imaging.BMP:
		return imgio.BMPEncoder(), "bmp"
	case imaging.TIFF:
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}, "tiff"
	case imaging.GIF:
		return func(w io.Writer, img image.Image) error {
			return imaging.Encode(w, img, imaging.GIF)
		}, "gif"
	default:
		return imgio.JPEGEncoder(quality), "jpeg"
	}
}

// BatchResult collects the outcome of BatchAutoCrop.
type BatchResult struct {
	Results   []SaveResult `json:"results"`
	Cropped   int          `json:"cropped"`
	Unchanged int          `json:"unchanged"`
	Failed    int          `json:"failed"`

	// Error joins the failures, one per file; empty when all succeeded.
	Error string `json:"error,omitempty"`
}

// BatchAutoCrop runs SaveAutoCrop for every path in order. When outputDir is
// set, crops are written there under their original file names and images
// without a border are not copied; otherwise sources are overwritten. A
// failure on one file does not stop the others. The returned error combines
// every failure.
//
// Every output path is claimed before anything is written. A file whose
// output is already claimed by an earlier path fails instead of replacing
// that path's crop. Each source is evicted from the cache once handled.
func BatchAutoCrop(cache *ImageCache, paths []string, outputDir string, opts SaveOptions) (*BatchResult, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	outputs := batchOutputs(paths, outputDir)
	res := &BatchResult{Results: make([]SaveResult, 0, len(paths))}
	var errs error
	for i, p := range paths {
		if outputs[i].err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", p, outputs[i].err))
			res.Failed++
			continue
		}

		r, err := SaveAutoCrop(cache, p, outputs[i].path, opts)
		cache.Evict(p)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", p, err))
			res.Failed++
			continue
		}
		if r.Cropped {
			res.Cropped++
		} else {
			res.Unchanged++
		}
		res.Results = append(res.Results, *r)
	}

	if errs != nil {
		res.Error = errs.Error()
	}
	return res, errs
}

type batchOutput struct {
	// path is empty when the source is overwritten.
	path string
	err  error
}

// batchOutputs resolves the destination of every source and rejects any
// destination that an earlier source already owns.
func batchOutputs(paths []string, outputDir string) []batchOutput {
	outputs := make([]batchOutput, len(paths))
	owner := make(map[string]string, len(paths))
	for i, p := range paths {
		dest := p
		if outputDir != "" {
			dest = filepath.Join(outputDir, filepath.Base(p))
			outputs[i].path = dest
		}

		key := filepath.Clean(dest)
		if first, ok := owner[key]; ok {
			outputs[i].err = fmt.Errorf("output %s already written for %s", dest, first)
			continue
		}
		owner[key] = p
	}
	return outputs
}
