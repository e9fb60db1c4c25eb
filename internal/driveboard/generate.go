package driveboard

import (
	"fmt"

	"github.com/pgavlin/lilraster/internal/bitmap"
	"github.com/pgavlin/lilraster/internal/laser"
)

// Generate builds the program that engraves pulses with the given job parameters.
//
// The program starts by zeroing the intensity and setting the raster feedrate, then scans the buffer one
// line at a time from PosY upwards. Each line is approached over the lead-in distance, rastered in chunks
// of at most RasterBytesMax pulses and left over the same distance. With SkipEmpty, all-zero lines are
// skipped and the remaining lines are trimmed to their first and last firing dot. With Bidirectional,
// every other line is scanned right to left; the direction alternates on skipped lines as well.
//
// Generate emits no setup or teardown beyond the raster itself; see Device.Run.
func Generate(pulses *bitmap.Pulses, params laser.Params) (*Program, error) {
	if longest := pulses.Max(); longest > laser.MaxPulseValue {
		return nil, fmt.Errorf("%w: image contains pulse duration %d, which is not feasible", laser.ErrConfig, longest)
	}
	if params.ActualPPMM <= 0 || params.Machine.RasterBytesMax <= 0 {
		return nil, fmt.Errorf("%w: parameters have not been planned", laser.ErrConfig)
	}

	program := &Program{}
	if pulses.Empty() {
		return program, nil
	}

	g := generator{program: program, chunkSize: params.Machine.RasterBytesMax}
	program.append(SetIntensity{Value: 0}, SetFeedrate{Feedrate: params.Feedrate})

	ppmm, leadIn := params.ActualPPMM, params.EffectiveLeadIn
	direction := 1.0
	for line := 0; line < pulses.Height; line++ {
		y := params.PosY + float64(line)/ppmm
		x := params.PosX
		data := pulses.Row(line)

		if params.SkipEmpty {
			first, last := firingSpan(data)
			if first < 0 {
				if params.Bidirectional {
					direction = -direction
				}
				continue
			}
			x += float64(first) / ppmm
			data = data[first : last+1]
		}

		if direction < 0 {
			// A raster move always starts with a pulse and ends with no pulse.
			//     0---1---2---3---|  forward
			// |---0---1---2---3      backward
			data = reversed(data)
			x += float64(len(data)-1) / ppmm
		}

		if leadIn > 0 {
			g.move(x-direction*leadIn, y)
		}
		g.move(x, y)
		x += direction * float64(len(data)) / ppmm
		g.rasterMove(x, y, data)
		if leadIn > 0 {
			g.move(x+direction*leadIn, y)
		}

		if params.Bidirectional {
			direction = -direction
		}
	}
	return program, nil
}

type generator struct {
	program   *Program
	chunkSize int
	x, y      float64
}

func (g *generator) move(x, y float64) {
	g.program.append(Move{X: x, Y: y})
	g.x, g.y = x, y
}

// rasterMove splits a raster line into chunks the firmware can buffer. Each chunk ends at the position
// reached after its last pulse, interpolated along the line.
func (g *generator) rasterMove(x, y float64, data []byte) {
	total := float64(len(data))
	for len(data) > 0 {
		n := min(g.chunkSize, len(data))
		chunk := append([]byte(nil), data[:n]...)
		data = data[n:]

		fac := float64(len(data)) / total
		g.program.append(RasterMove{
			X:    fac*g.x + (1-fac)*x,
			Y:    fac*g.y + (1-fac)*y,
			Data: chunk,
		})
	}
	g.x, g.y = x, y
}

// firingSpan returns the indices of the first and last non-zero pulse, or -1, -1 if there are none.
func firingSpan(data []byte) (int, int) {
	first, last := -1, -1
	for i, v := range data {
		if v != 0 {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	return first, last
}

func reversed(data []byte) []byte {
	r := make([]byte, len(data))
	for i, v := range data {
		r[len(data)-1-i] = v
	}
	return r
}
