package source

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// decodeSVG renders an SVG document onto a transparent canvas. The preprocessor flattens it onto white.
func decodeSVG(data []byte, width int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing SVG: %v", ErrUnreadable, err)
	}

	viewBoxW, viewBoxH := float64(icon.ViewBox.W), float64(icon.ViewBox.H)
	if viewBoxW <= 0 || viewBoxH <= 0 {
		return nil, fmt.Errorf("%w: SVG has an empty view box", ErrUnreadable)
	}

	w := int(math.Ceil(viewBoxW))
	if width > 0 {
		w = width
	}
	h := int(math.Round(viewBoxH * float64(w) / viewBoxW))
	if h == 0 {
		h = 1
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)

	icon.Draw(raster, 1.0)
	return img, nil
}
