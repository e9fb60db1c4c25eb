package bitmap

import (
	"image"
	"image/color"
	"math"
)

// Luma weights (ITU-R BT.601).
const lumR, lumG, lumB = 0.299, 0.587, 0.114

// ToGray flattens img onto a white background and converts it to 8-bit luma at its native resolution.
// The result's bounds always start at the origin.
func ToGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			gray.SetGray(x, y, flatten(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return gray
}

// flatten composites c onto white. RGBA returns alpha-premultiplied components, so the weighted sum is
// already alpha*luma.
func flatten(c color.Color) color.Gray {
	r, g, b, a := c.RGBA()
	luma := (lumR*float64(r) + lumG*float64(g) + lumB*float64(b)) / 0xffff
	v := luma + (1.0 - float64(a)/0xffff)
	return color.Gray{Y: uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))}
}
