package laser

import (
	"fmt"

	"github.com/pgavlin/lilraster/internal/motion"
)

// Settings are the user-chosen parameters of a raster job.
type Settings struct {
	Width         float64 `json:"width"`         // output width in mm; the height follows the image aspect ratio
	EnergyDensity float64 `json:"energyDensity"` // J/mm^2 delivered to fully black regions
	PPMM          float64 `json:"ppmm"`          // requested dots per mm
	LeadIn        float64 `json:"leadIn"`        // requested approach distance in mm

	PosX float64 `json:"posX"`
	PosY float64 `json:"posY"`

	Bidirectional bool `json:"bidirectional"`
	SkipEmpty     bool `json:"skipEmpty"`
	Invert        bool `json:"invert"`
	Binary        bool `json:"binary"`

	MaxFeedrate  float64 `json:"maxFeedrate"`  // mm/min
	MaxIntensity float64 `json:"maxIntensity"` // percent
}

// DefaultSettings mirrors the defaults of the raster front end.
var DefaultSettings = Settings{
	Width:         20.0,
	EnergyDensity: 0.7,
	PPMM:          18.0,
	LeadIn:        2.5,
	PosX:          10.0,
	PosY:          10.0,
	SkipEmpty:     true,
	MaxFeedrate:   6000,
	MaxIntensity:  80,
}

// Validate checks the settings for values that cannot produce a job.
func (s Settings) Validate() error {
	switch {
	case s.Width < 0:
		return fmt.Errorf("%w: width must not be negative, got %v", ErrConfig, s.Width)
	case s.EnergyDensity <= 0:
		return fmt.Errorf("%w: energy density must be positive, got %v", ErrConfig, s.EnergyDensity)
	case s.PPMM <= 0:
		return fmt.Errorf("%w: ppmm must be positive, got %v", ErrConfig, s.PPMM)
	case s.LeadIn < 0:
		return fmt.Errorf("%w: lead-in must not be negative, got %v", ErrConfig, s.LeadIn)
	case s.MaxFeedrate <= 0:
		return fmt.Errorf("%w: max feedrate must be positive, got %v", ErrConfig, s.MaxFeedrate)
	case s.MaxIntensity <= 0 || s.MaxIntensity > 100:
		return fmt.Errorf("%w: max intensity must be in (0, 100], got %v", ErrConfig, s.MaxIntensity)
	}
	return nil
}

// Params are the fully-resolved parameters of a raster job. They are only ever built by Plan, so the
// derived fields always come from a single solver call.
type Params struct {
	Settings
	Machine Machine

	Pulse           int     // pulse duration in ticks for every fired dot
	ActualPPMM      float64 // dots per mm implied by Pulse
	Feedrate        float64 // raster feedrate in mm/min
	EffectiveLeadIn float64 // lead-in in mm, capped by the acceleration distance
}

// Plan validates the settings and machine and derives the pulse, pitch, feedrate and lead-in of a job.
func Plan(s Settings, m Machine) (Params, error) {
	if err := m.Validate(); err != nil {
		return Params{}, err
	}
	if err := s.Validate(); err != nil {
		return Params{}, err
	}

	pulse, ppmm := Solve(s.EnergyDensity, s.PPMM, m.LaserPower, m.PulseSeconds, m.MinPulseTicks, m.MaxPulseTicks)
	if pulse > MaxPulseValue {
		return Params{}, fmt.Errorf("%w: pulse duration %d is not representable", ErrConfig, pulse)
	}
	feedrate := LimitFeedrate(s.MaxFeedrate, s.MaxIntensity, pulse, ppmm, m.PulseSeconds, m.BaudRate)

	return Params{
		Settings:        s,
		Machine:         m,
		Pulse:           pulse,
		ActualPPMM:      ppmm,
		Feedrate:        feedrate,
		EffectiveLeadIn: motion.LeadIn(s.LeadIn, feedrate, m.Acceleration),
	}, nil
}

// PulseMicroseconds returns the duration of a single pulse.
func (p Params) PulseMicroseconds() float64 {
	return float64(p.Pulse) * p.Machine.PulseSeconds / 1e-6
}

// Intensity returns the laser duty cycle, in percent, of a fully black line at the raster feedrate.
func (p Params) Intensity() float64 {
	return float64(p.Pulse) * p.Machine.PulseSeconds * (p.Feedrate / 60.0 * p.ActualPPMM) * 100
}
