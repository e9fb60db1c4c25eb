// Package engrave runs the raster pipeline: planning, preprocessing, dithering and duration estimation.
package engrave

import (
	"context"
	"image"

	"github.com/pgavlin/lilraster/internal/bitmap"
	"github.com/pgavlin/lilraster/internal/driveboard"
	"github.com/pgavlin/lilraster/internal/laser"
	"github.com/pgavlin/lilraster/internal/motion"
)

// A Job is the immutable result of preparing an image for engraving.
type Job struct {
	Params laser.Params
	Gray   *image.Gray
	Pulses *bitmap.Pulses

	// Duration is the estimated run time in seconds.
	Duration float64
}

// Lines returns the number of scan lines in the job.
func (j *Job) Lines() int {
	return j.Pulses.Height
}

// Program generates the job's motion program.
func (j *Job) Program() (*driveboard.Program, error) {
	return driveboard.Generate(j.Pulses, j.Params)
}

// Prepare plans a job for img and builds its pulse buffer. The ditherer may be nil; see bitmap.Options.
// The context is checked between pipeline stages.
func Prepare(ctx context.Context, img image.Image, s laser.Settings, m laser.Machine, ditherer bitmap.Ditherer) (*Job, error) {
	params, err := laser.Plan(s, m)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gray := bitmap.ToGray(img)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pulses := bitmap.Rasterize(gray, bitmap.Options{
		PPMM:     params.ActualPPMM,
		Width:    params.Width,
		Pulse:    uint8(params.Pulse),
		Invert:   params.Invert,
		Binary:   params.Binary,
		Ditherer: ditherer,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Job{
		Params:   params,
		Gray:     gray,
		Pulses:   pulses,
		Duration: motion.Estimate(pulses.Height, params.Feedrate, params.LeadIn, params.Width, m.Acceleration, params.Bidirectional),
	}, nil
}
