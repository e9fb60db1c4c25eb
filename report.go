package main

import (
	"log"

	"github.com/pgavlin/lilraster/internal/driveboard"
	"github.com/pgavlin/lilraster/internal/engrave"
	"github.com/pgavlin/lilraster/internal/laser"
	"github.com/pgavlin/lilraster/internal/motion"
)

// A jobReport collects the derived figures of a prepared job.
type jobReport struct {
	DesiredPPMM       float64 `json:"desiredPPMM"`
	PPMM              float64 `json:"ppmm"`
	PulseTicks        int     `json:"pulseTicks"`
	PulseMicroseconds float64 `json:"pulseMicroseconds"`
	IntensityFeedrate float64 `json:"intensityFeedrate"`
	LinkFeedrate      float64 `json:"linkFeedrate"`
	Feedrate          float64 `json:"feedrate"`
	Intensity         float64 `json:"intensity"`
	LeadIn            float64 `json:"leadIn"`
	Width             int     `json:"width"`
	Lines             int     `json:"lines"`
	Duration          float64 `json:"duration"`
}

func newReport(job *engrave.Job) jobReport {
	p := job.Params
	return jobReport{
		DesiredPPMM:       p.Settings.PPMM,
		PPMM:              p.ActualPPMM,
		PulseTicks:        p.Pulse,
		PulseMicroseconds: p.PulseMicroseconds(),
		IntensityFeedrate: laser.IntensityFeedrate(p.MaxIntensity, p.Pulse, p.ActualPPMM, p.Machine.PulseSeconds),
		LinkFeedrate:      laser.LinkFeedrate(p.ActualPPMM, p.Machine.BaudRate),
		Feedrate:          p.Feedrate,
		Intensity:         p.Intensity(),
		LeadIn:            p.EffectiveLeadIn,
		Width:             job.Pulses.Width,
		Lines:             job.Lines(),
		Duration:          job.Duration,
	}
}

func (r jobReport) log() {
	log.Printf("ppmm: desired %.3f, actual %.3f", r.DesiredPPMM, r.PPMM)
	log.Printf("pulse: %d ticks (%.2f us)", r.PulseTicks, r.PulseMicroseconds)
	log.Printf("feedrate: %.2f mm/min (intensity limit %.2f, link limit %.2f)", r.Feedrate, r.IntensityFeedrate, r.LinkFeedrate)
	log.Printf("full-black intensity: %.1f%%", r.Intensity)
	log.Printf("lead-in: %.3f mm", r.LeadIn)
	log.Printf("raster: %dx%d dots", r.Width, r.Lines)
	log.Printf("estimated duration: %v", motion.Duration(r.Duration))
}

func logSimulation(r driveboard.Report) {
	log.Printf("simulated: %d commands, %d raster bytes, %.1f mm traveled, %v without acceleration",
		r.Commands, r.RasterBytes, r.Distance, motion.Duration(r.Minutes*60))
}
