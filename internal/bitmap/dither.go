package bitmap

import (
	"fmt"
	"image"
	"sort"

	"github.com/MaxHalford/halfgone"
)

// A Ditherer reduces an 8-bit image to pure black (0) and white (255).
type Ditherer interface {
	Apply(gray *image.Gray) *image.Gray
}

// FloydSteinberg is an error-diffusion ditherer that conserves the quantization error of every pixel
// exactly: the bottom-right neighbour receives whatever the other three did not. Error that would fall
// outside the image is discarded.
//
// The zero value is ready to use. A FloydSteinberg keeps its scratch buffer between calls and must not be
// used concurrently.
type FloydSteinberg struct {
	buf []int32
}

// Apply dithers gray with a threshold of 128.
func (fs *FloydSteinberg) Apply(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if cap(fs.buf) < w*h {
		fs.buf = make([]int32, w*h)
	}
	buf := fs.buf[:w*h]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = int32(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
		}
	}
	diffuse(buf, w, h)

	out := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range buf {
		out.Pix[(i/w)*out.Stride+i%w] = uint8(v)
	}
	return out
}

// diffuse quantizes buf in place, visiting pixels in row-major order.
func diffuse(buf []int32, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			cc := buf[i]
			rc := int32(255)
			if cc < 128 {
				rc = 0
			}
			err := cc - rc
			buf[i] = rc

			right, bottomLeft, bottom, bottomRight := shares(err)

			if x+1 < w {
				buf[i+1] += right
			}
			if y+1 == h {
				continue
			}
			if x > 0 {
				buf[i+w-1] += bottomLeft
			}
			buf[i+w] += bottom
			if x+1 < w {
				buf[i+w+1] += bottomRight
			}
		}
	}
}

// shares splits a quantization error 7/16, 3/16, 5/16 between the right, bottom-left and bottom
// neighbours. The bottom-right neighbour takes the remainder, so the four shares always sum to err.
func shares(err int32) (right, bottomLeft, bottom, bottomRight int32) {
	right, bottomLeft, bottom = err*7/16, err*3/16, err*5/16
	return right, bottomLeft, bottom, err - right - bottomLeft - bottom
}

// Threshold maps every pixel below Level to black and every other pixel to white.
type Threshold struct {
	Level uint8
}

// Apply thresholds gray.
func (t Threshold) Apply(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y >= t.Level {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

var ditherers = map[string]func() Ditherer{
	"floyd-steinberg":          func() Ditherer { return &FloydSteinberg{} },
	"threshold":                func() Ditherer { return Threshold{Level: 128} },
	"atkinson":                 func() Ditherer { return &halfgone.AtkinsonDitherer{} },
	"stucki":                   func() Ditherer { return &halfgone.StuckiDitherer{} },
	"halfgone-floyd-steinberg": func() Ditherer { return &halfgone.FloydSteinbergDitherer{} },
	"bayer":                    newBayer,
	"sierra":                   newSierra,
}

// DithererNames returns the names accepted by NewDitherer.
func DithererNames() []string {
	names := make([]string, 0, len(ditherers))
	for name := range ditherers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDitherer returns a fresh ditherer by name. The empty name selects Floyd-Steinberg.
func NewDitherer(name string) (Ditherer, error) {
	if name == "" {
		name = "floyd-steinberg"
	}
	ctor, ok := ditherers[name]
	if !ok {
		return nil, fmt.Errorf("unknown ditherer %q (expected one of %v)", name, DithererNames())
	}
	return ctor(), nil
}
