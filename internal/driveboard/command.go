package driveboard

import (
	"encoding/base64"
	"strconv"
)

// A Command is a single line of the driveboard's g-code dialect.
type Command interface {
	// AppendText appends the command's text, without a line terminator, to b.
	AppendText(b []byte) []byte
}

// SetIntensity sets the laser intensity (S). Raster moves carry their own pulse durations, so jobs set it
// to zero.
type SetIntensity struct {
	Value int
}

func (c SetIntensity) AppendText(b []byte) []byte {
	b = append(b, 'S')
	return strconv.AppendInt(b, int64(c.Value), 10)
}

// SetFeedrate sets the modal feedrate in mm/min (G0 F).
type SetFeedrate struct {
	Feedrate float64
}

func (c SetFeedrate) AppendText(b []byte) []byte {
	b = append(b, "G0 F"...)
	return appendFixed(b, c.Feedrate, 3)
}

// Move is a non-firing move (G0). A zero Feedrate leaves the modal feedrate unchanged.
type Move struct {
	X, Y     float64
	Feedrate float64
}

func (c Move) AppendText(b []byte) []byte {
	b = append(b, "G0 X"...)
	b = appendFixed(b, c.X, 3)
	b = append(b, " Y"...)
	b = appendFixed(b, c.Y, 3)
	if c.Feedrate > 0 {
		b = append(b, " F"...)
		b = appendFixed(b, c.Feedrate, 2)
	}
	return b
}

// RasterMove moves in a straight line to (X, Y) while firing one pulse of Data[i] ticks per dot (G7).
type RasterMove struct {
	X, Y float64
	Data []byte
}

func (c RasterMove) AppendText(b []byte) []byte {
	b = append(b, "G7 X"...)
	b = appendFixed(b, c.X, 3)
	b = append(b, " Y"...)
	b = appendFixed(b, c.Y, 3)
	// V1 selects line mode. The controller front end has always sent it without a separating space.
	b = append(b, "V1 D"...)
	return base64.StdEncoding.AppendEncode(b, c.Data)
}

// Air switches the air assist on (M80) or off (M81).
type Air struct {
	On bool
}

func (c Air) AppendText(b []byte) []byte {
	if c.On {
		return append(b, "M80"...)
	}
	return append(b, "M81"...)
}

// appendFixed formats v with a fixed number of decimals, printing negative zero as zero.
func appendFixed(b []byte, v float64, decimals int) []byte {
	if v == 0 {
		v = 0
	}
	return strconv.AppendFloat(b, v, 'f', decimals, 64)
}
