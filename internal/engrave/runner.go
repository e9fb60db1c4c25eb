package engrave

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/pgavlin/lilraster/internal/bitmap"
	"github.com/pgavlin/lilraster/internal/laser"
)

// ErrSuperseded is delivered to a job that was replaced by a newer submission before it completed.
var ErrSuperseded = errors.New("job superseded")

// A Result is the outcome of a submitted job.
type Result struct {
	Job *Job
	Err error
}

// A Runner prepares jobs in the background. Only the most recently submitted job can become the latest
// result; older jobs are cancelled and report ErrSuperseded. A failed submission clears the latest result.
//
// Jobs do not share buffers, so a Runner may be used from multiple goroutines.
type Runner struct {
	// NewDitherer creates the ditherer for each job. Nil uses the default Floyd-Steinberg ditherer.
	NewDitherer func() bitmap.Ditherer

	m          sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	latest     *Job
}

// Submit starts preparing a job, cancelling any job still in progress. The returned channel receives
// exactly one result.
func (r *Runner) Submit(ctx context.Context, img image.Image, s laser.Settings, m laser.Machine) <-chan Result {
	ctx, cancel := context.WithCancel(ctx)

	r.m.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.generation++
	generation := r.generation
	r.cancel = cancel
	r.m.Unlock()

	var ditherer bitmap.Ditherer
	if r.NewDitherer != nil {
		ditherer = r.NewDitherer()
	}

	results := make(chan Result, 1)
	go func() {
		defer cancel()

		job, err := Prepare(ctx, img, s, m, ditherer)

		r.m.Lock()
		defer r.m.Unlock()
		if generation != r.generation {
			results <- Result{Err: ErrSuperseded}
			return
		}
		r.latest = job
		results <- Result{Job: job, Err: err}
	}()
	return results
}

// Latest returns the job of the most recent submission that has completed, or nil if that submission
// failed.
func (r *Runner) Latest() *Job {
	r.m.Lock()
	defer r.m.Unlock()
	return r.latest
}
