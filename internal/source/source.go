// Package source turns files, URLs, barcodes and text into images ready for rastering.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnreadable is returned (wrapped) when a source cannot be read or decoded.
var ErrUnreadable = errors.New("unreadable source")

// Options controls decoding.
type Options struct {
	// SVGWidth is the pixel width at which SVG documents are rendered. Zero uses the document's view box.
	SVGWidth int
}

// Open reads and decodes the image at name, which is either a local path or an http(s) URL.
func Open(ctx context.Context, name string, opts Options) (image.Image, error) {
	data, contentType, err := read(ctx, name)
	if err != nil {
		return nil, err
	}
	return Decode(data, name, contentType, opts)
}

// Decode decodes a raster image (PNG, JPEG, GIF, BMP, TIFF or WebP) or an SVG document. JPEG photos are
// rotated according to their EXIF orientation. The name and content type are only used to recognize SVG
// documents and may be empty.
func Decode(data []byte, name, contentType string, opts Options) (image.Image, error) {
	if isSVG(data, name, contentType) {
		return decodeSVG(data, opts.SVGWidth)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %v: %v", ErrUnreadable, name, err)
	}
	return img, nil
}

func read(ctx context.Context, name string) ([]byte, string, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		data, contentType, err := download(ctx, name)
		if err != nil {
			return nil, "", fmt.Errorf("%w: fetching %v: %v", ErrUnreadable, name, err)
		}
		return data, contentType, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return data, "", nil
}

func isSVG(data []byte, name, contentType string) bool {
	if strings.HasPrefix(contentType, "image/svg") || strings.EqualFold(filepath.Ext(name), ".svg") {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}
