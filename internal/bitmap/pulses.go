package bitmap

import (
	"image"
	"image/color"
)

// Pulses is a grid of per-dot pulse durations in firmware ticks. Zero means the laser does not fire.
type Pulses struct {
	Pix           []uint8
	Width, Height int
}

// NewPulses creates an all-zero pulse buffer of the given size.
func NewPulses(width, height int) *Pulses {
	if width <= 0 || height <= 0 {
		return &Pulses{}
	}
	return &Pulses{Pix: make([]uint8, width*height), Width: width, Height: height}
}

// Empty returns true if the buffer has zero width or height.
func (p *Pulses) Empty() bool {
	return p.Width == 0 || p.Height == 0
}

// Row returns the pulses of scan line y. The returned slice aliases the buffer.
func (p *Pulses) Row(y int) []uint8 {
	return p.Pix[y*p.Width : (y+1)*p.Width]
}

// PulseAt returns the pulse duration of the dot at (x, y).
func (p *Pulses) PulseAt(x, y int) uint8 {
	return p.Pix[y*p.Width+x]
}

// SetPulse sets the pulse duration of the dot at (x, y).
func (p *Pulses) SetPulse(x, y int, v uint8) {
	p.Pix[y*p.Width+x] = v
}

// Max returns the longest pulse in the buffer.
func (p *Pulses) Max() uint8 {
	var longest uint8
	for _, v := range p.Pix {
		if v > longest {
			longest = v
		}
	}
	return longest
}

// Count returns the number of dots that fire.
func (p *Pulses) Count() int {
	n := 0
	for _, v := range p.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// ColorModel returns the Pulses' color model.
func (p *Pulses) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds returns the domain for which At can return non-zero color.
func (p *Pulses) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// At returns the color of the dot at (x, y).
//
// Dots that fire are black; dots that do not are white.
func (p *Pulses) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Bounds())) {
		return color.Gray{}
	}
	if p.PulseAt(x, y) != 0 {
		return color.Black
	}
	return color.White
}
