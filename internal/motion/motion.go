// Package motion estimates how long the machine needs to scan a raster job.
//
// Feedrates are in mm/min, accelerations in mm/min^2 and distances in mm.
package motion

import (
	"math"
	"time"
)

// leadInMargin is the cruising time, in seconds, allowed on top of the acceleration distance.
const leadInMargin = 3.0

// AccelDistance returns the distance needed to reach feedrate from standstill.
func AccelDistance(feedrate, acceleration float64) float64 {
	return 0.5 * feedrate * feedrate / acceleration
}

// LeadIn caps the requested lead-in to the acceleration distance plus a few seconds at cruising speed.
func LeadIn(requested, feedrate, acceleration float64) float64 {
	return math.Min(requested, AccelDistance(feedrate, acceleration)+leadInMargin*feedrate/60)
}

// LineDuration returns the time, in minutes, to traverse one scan line of the given width including its
// lead-in and lead-out. Lines too short to reach feedrate accelerate for half their length and decelerate
// for the other half.
func LineDuration(feedrate, leadIn, width, acceleration float64) float64 {
	accelDist := AccelDistance(feedrate, acceleration)
	lineLength := 2*leadIn + width
	cruisingDist := lineLength - 2*accelDist
	if cruisingDist <= 0 {
		cruisingDist = 0
		accelDist = lineLength / 2
	}
	cruisingTime := cruisingDist / feedrate
	accelTime := math.Sqrt(2 * accelDist / acceleration)
	return cruisingTime + 2*accelTime
}

// Estimate returns the duration of a raster job in seconds. The requested lead-in is capped as by LeadIn.
// Unidirectional jobs take twice as long, as every line needs a return traversal.
func Estimate(lines int, feedrate, requestedLeadIn, width, acceleration float64, bidirectional bool) float64 {
	if lines <= 0 {
		return 0
	}
	leadIn := LeadIn(requestedLeadIn, feedrate, acceleration)
	minutes := LineDuration(feedrate, leadIn, width, acceleration) * float64(lines)
	if !bidirectional {
		minutes *= 2
	}
	return minutes * 60
}

// Duration converts seconds as returned by Estimate to a time.Duration.
func Duration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
