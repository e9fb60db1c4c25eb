package bitmap

import (
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
)

var blackAndWhite = color.Palette{color.Black, color.White}

// paletteDitherer adapts a two-colour dither.Ditherer. The library dithers in linear light, so its output
// is lighter than the sRGB-space diffusion of FloydSteinberg for the same input.
type paletteDitherer struct {
	d *dither.Ditherer
}

func newBayer() Ditherer {
	d := dither.NewDitherer(blackAndWhite)
	d.Mapper = dither.Bayer(8, 8, 1.0)
	return paletteDitherer{d: d}
}

func newSierra() Ditherer {
	d := dither.NewDitherer(blackAndWhite)
	d.Matrix = dither.Sierra
	return paletteDitherer{d: d}
}

func (p paletteDitherer) Apply(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	paletted := image.NewPaletted(bounds, blackAndWhite)
	p.d.Draw(paletted, bounds, gray, bounds.Min)

	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if paletted.ColorIndexAt(x, y) == 1 {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
