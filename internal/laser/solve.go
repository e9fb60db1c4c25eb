package laser

import "math"

// Solve finds the pulse duration (in ticks) whose implied dot pitch comes closest to the requested pitch.
//
// For a pulse of t ticks each dot delivers t*pulseSeconds*laserPower joules, so a square grid of dots
// realizes the requested energy density at a pitch of sqrt(energyDensity/energyPerPulse) dots per mm.
// Every tick count in [minTicks, maxTicks] is tried; ties go to the shorter pulse.
func Solve(energyDensity, ppmm, laserPower, pulseSeconds float64, minTicks, maxTicks int) (pulse int, actualPPMM float64) {
	var bestError float64
	for t := minTicks; t <= maxTicks; t++ {
		energyPerPulse := float64(t) * pulseSeconds * laserPower // joules
		candidate := math.Sqrt(energyDensity / energyPerPulse)
		err := math.Abs(ppmm - candidate)
		if t == minTicks || err < bestError {
			pulse, actualPPMM, bestError = t, candidate, err
		}
	}
	return pulse, actualPPMM
}

// LimitFeedrate returns the fastest raster feedrate (mm/min) that respects the machine maximum, the
// maximum laser duty cycle and the sustained throughput of the serial link.
func LimitFeedrate(maxFeedrate, maxIntensity float64, pulse int, ppmm, pulseSeconds float64, baudRate int) float64 {
	return min(maxFeedrate, IntensityFeedrate(maxIntensity, pulse, ppmm, pulseSeconds), LinkFeedrate(ppmm, baudRate))
}

// IntensityFeedrate is the feedrate at which a fully black line reaches maxIntensity percent duty.
func IntensityFeedrate(maxIntensity float64, pulse int, ppmm, pulseSeconds float64) float64 {
	return maxIntensity / 100.0 / (ppmm * (float64(pulse) * pulseSeconds)) * 60
}

// LinkFeedrate is the feedrate at which the driveboard consumes raster bytes as fast as the link delivers them.
func LinkFeedrate(ppmm float64, baudRate int) float64 {
	// 8 data bits plus start and stop bit, and every byte is sent twice for error detection.
	bytesPerSecond := float64(baudRate) / 10 / 2
	// Leave room for parameters and line commands.
	bytesPerSecond *= 0.5
	return bytesPerSecond / ppmm * 60.0
}
