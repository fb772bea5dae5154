// Package imaging owns the raster boundary: decoding source files into RGBA
// buffers, nearest-neighbor resizing, and encoding finished sheets.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mandykoh/prism"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Supported reports whether path has an extension handled by a registered
// decoder.
func Supported(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Decode reads path and normalizes the result to RGBA. Fully transparent
// stays alpha 0 regardless of the source pixel format.
func Decode(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	return prism.ConvertImageToRGBA(img, runtime.NumCPU()), nil
}

// Resize scales src to w x h with nearest-neighbor sampling, keeping hard
// pixel edges.
func Resize(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
	return dst
}

// Save encodes img as PNG at path and returns the number of bytes written.
func Save(img image.Image, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
