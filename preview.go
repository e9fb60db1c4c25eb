package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pgavlin/lilraster/internal/bitmap"
)

// previewMargin is the width of the frame drawn around a preview, in output pixels.
const previewMargin = 20

// frameColor marks the area outside the engraving.
var frameColor = color.Gray{Y: 0xc0}

// A preview renders a pulse buffer at scale output pixels per dot, framed by a margin.
type preview struct {
	pulses *bitmap.Pulses
	scale  int
}

func (p *preview) ColorModel() color.Model {
	return color.GrayModel
}

func (p *preview) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.pulses.Width*p.scale+2*previewMargin, p.pulses.Height*p.scale+2*previewMargin)
}

func (p *preview) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Bounds()) {
		return color.Black
	}

	x, y = x-previewMargin, y-previewMargin
	if x < 0 || y < 0 {
		return frameColor
	}
	x, y = x/p.scale, y/p.scale
	if x >= p.pulses.Width || y >= p.pulses.Height {
		return frameColor
	}
	return p.pulses.At(x, y)
}

func writePreview(path string, pulses *bitmap.Pulses, scale int) error {
	if scale < 1 {
		scale = 1
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = png.Encode(f, &preview{pulses: pulses, scale: scale}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
