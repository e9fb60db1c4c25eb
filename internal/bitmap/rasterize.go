package bitmap

import (
	"image"
	"image/draw"
	"math"

	"github.com/nfnt/resize"
)

// Options controls the conversion of a grayscale image to a pulse buffer.
type Options struct {
	PPMM   float64 // output dots per mm
	Width  float64 // output width in mm
	Pulse  uint8   // pulse duration of every fired dot
	Invert bool    // fire on light instead of dark pixels

	// Binary disables interpolation and dithering: the image is resampled with nearest-neighbour and
	// thresholded.
	Binary bool

	// Ditherer is used unless Binary is set. Nil selects a new FloydSteinberg.
	Ditherer Ditherer
}

// Dimensions returns the size in dots of gray when printed at ppmm dots per mm and width mm.
func Dimensions(gray image.Image, ppmm, width float64) (int, int) {
	inputW, inputH := gray.Bounds().Dx(), gray.Bounds().Dy()
	if inputW == 0 {
		return 0, 0
	}
	scale := ppmm * width / float64(inputW)
	return int(math.Round(ppmm * width)), int(math.Round(scale * float64(inputH)))
}

// Rasterize scales gray to the output resolution, inverts it so that dark means high power, dithers it and
// maps every set dot to opts.Pulse. The result's height is the job's line count.
//
// Scaling uses bilinear interpolation (nearest-neighbour in binary mode) on the sRGB values; no
// linear-light conversion is applied. Sizes that round to zero produce an empty buffer.
func Rasterize(gray *image.Gray, opts Options) *Pulses {
	w, h := Dimensions(gray, opts.PPMM, opts.Width)
	if w <= 0 || h <= 0 {
		return NewPulses(0, 0)
	}

	interp, ditherer := resize.Bilinear, opts.Ditherer
	if opts.Binary {
		interp, ditherer = resize.NearestNeighbor, Threshold{Level: 128}
	} else if ditherer == nil {
		ditherer = &FloydSteinberg{}
	}

	scaled := toGray(resize.Resize(uint(w), uint(h), gray, interp))
	if scaled == gray {
		// Resize hands back its input when the size already matches.
		scaled = image.NewGray(gray.Bounds())
		copy(scaled.Pix, gray.Pix)
	}
	if !opts.Invert {
		for i, v := range scaled.Pix {
			scaled.Pix[i] = 255 - v
		}
	}

	dithered := ditherer.Apply(scaled)

	bounds := dithered.Bounds()
	pulses := NewPulses(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dithered.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y != 0 {
				pulses.SetPulse(x, y, opts.Pulse)
			}
		}
	}
	return pulses
}

// toGray returns img as an origin-based *image.Gray, copying only when necessary.
func toGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok && gray.Bounds().Min == (image.Point{}) && gray.Stride == gray.Bounds().Dx() {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}
