package laser

import (
	"errors"
	"fmt"
)

// ErrConfig is returned (wrapped) whenever machine constants or job settings cannot produce valid geometry.
var ErrConfig = errors.New("invalid configuration")

// MaxPulseValue is the largest pulse duration the driveboard firmware can represent in a raster byte.
const MaxPulseValue = 127

// A Machine holds the fixed physical and firmware constants of a laser cutter.
type Machine struct {
	LaserPower     float64 // W
	PulseSeconds   float64 // duration of one pulse tick
	MinPulseTicks  int
	MaxPulseTicks  int
	RasterBytesMax int     // pulse bytes accepted per raster command
	BaudRate       int     // serial link speed
	Acceleration   float64 // mm/min^2
	TravelFeedrate float64 // mm/min, used for non-raster moves
}

// Lasersaur is the default machine: a 100W tube driven by the pulse-raster firmware.
var Lasersaur = Machine{
	LaserPower:     100.0,
	PulseSeconds:   31.875e-6,
	MinPulseTicks:  3,
	MaxPulseTicks:  127,
	RasterBytesMax: 60,
	BaudRate:       57600,
	Acceleration:   1800000.0,
	TravelFeedrate: 6000.0,
}

// Validate checks that every constant is physically meaningful.
func (m Machine) Validate() error {
	switch {
	case m.LaserPower <= 0:
		return fmt.Errorf("%w: laser power must be positive, got %v", ErrConfig, m.LaserPower)
	case m.PulseSeconds <= 0:
		return fmt.Errorf("%w: pulse tick duration must be positive, got %v", ErrConfig, m.PulseSeconds)
	case m.MinPulseTicks < 1 || m.MaxPulseTicks < m.MinPulseTicks:
		return fmt.Errorf("%w: invalid pulse tick range [%d, %d]", ErrConfig, m.MinPulseTicks, m.MaxPulseTicks)
	case m.MaxPulseTicks > MaxPulseValue:
		return fmt.Errorf("%w: pulse ticks must be less than %d, got %d", ErrConfig, MaxPulseValue+1, m.MaxPulseTicks)
	case m.RasterBytesMax <= 0:
		return fmt.Errorf("%w: raster chunk size must be positive, got %d", ErrConfig, m.RasterBytesMax)
	case m.BaudRate <= 0:
		return fmt.Errorf("%w: baud rate must be positive, got %d", ErrConfig, m.BaudRate)
	case m.Acceleration <= 0:
		return fmt.Errorf("%w: acceleration must be positive, got %v", ErrConfig, m.Acceleration)
	case m.TravelFeedrate <= 0:
		return fmt.Errorf("%w: travel feedrate must be positive, got %v", ErrConfig, m.TravelFeedrate)
	}
	return nil
}
