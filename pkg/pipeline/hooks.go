// File: pkg/pipeline/hooks.go
package pipeline

import (
	"context"
	"time"
)

// Hooks defines lifecycle callbacks around each pipeline step
type Hooks interface {
	BeforeStep(ctx context.Context, index int, step Step)
	AfterStep(ctx context.Context, index int, step Step, elapsed time.Duration, err error)
}

// StepRecord is the outcome of one executed step.
type StepRecord struct {
	Index   int
	Step    Step
	Elapsed time.Duration
	Err     error
}

// Recorder is a Hooks that keeps the outcome of every step that started.
type Recorder struct {
	Records []StepRecord
}

func (r *Recorder) BeforeStep(context.Context, int, Step) {}

func (r *Recorder) AfterStep(_ context.Context, index int, step Step, elapsed time.Duration, err error) {
	r.Records = append(r.Records, StepRecord{Index: index, Step: step, Elapsed: elapsed, Err: err})
}

// Failed returns the record of the failing step, if any.
func (r *Recorder) Failed() (StepRecord, bool) {
	for _, rec := range r.Records {
		if rec.Err != nil {
			return rec, true
		}
	}
	return StepRecord{}, false
}
