package driveboard

import (
	"math"
)

// A Report summarizes a simulated program run.
type Report struct {
	Distance    float64 // mm traveled
	Minutes     float64 // duration without accelerations
	RasterBytes int     // pulse bytes sent in raster moves
	Commands    int
}

// Simulate walks a program from the origin, starting at the given feedrate, and tallies its motion.
func Simulate(p *Program, feedrate float64) Report {
	var r Report
	var x, y float64
	move := func(tx, ty float64) {
		dist := math.Hypot(tx-x, ty-y)
		r.Distance += dist
		if feedrate > 0 {
			r.Minutes += dist / feedrate
		}
		x, y = tx, ty
	}

	for _, c := range p.Commands() {
		r.Commands++
		switch c := c.(type) {
		case SetFeedrate:
			feedrate = c.Feedrate
		case Move:
			if c.Feedrate > 0 {
				feedrate = c.Feedrate
			}
			move(c.X, c.Y)
		case RasterMove:
			r.RasterBytes += len(c.Data)
			move(c.X, c.Y)
		}
	}
	return r
}
