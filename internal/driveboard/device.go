package driveboard

import (
	"io"
)

// A Device is a driveboard reached through a byte stream, typically a serial port.
type Device struct {
	w io.Writer
}

// New creates a Device that writes commands to w.
func New(w io.Writer) *Device {
	return &Device{w: w}
}

// Send writes the program's commands in order, one line at a time.
func (d *Device) Send(p *Program) error {
	_, err := p.WriteTo(d.w)
	return err
}

// Run sends a complete job: the air assist is enabled, the program runs, the head returns to the origin at
// the travel feedrate and the air assist is disabled.
func (d *Device) Run(p *Program, travelFeedrate float64) error {
	if err := d.Send(envelope(Air{On: true})); err != nil {
		return err
	}
	if err := d.Send(p); err != nil {
		return err
	}
	return d.Send(envelope(Move{X: 0, Y: 0, Feedrate: travelFeedrate}, Air{On: false}))
}

func envelope(c ...Command) *Program {
	return &Program{commands: c}
}
