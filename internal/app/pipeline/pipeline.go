// SPDX-License-Identifier: MPL-2.0

// Package pipeline orchestrates the build: a linear sequence of steps from
// clean to export, where the first failure terminates the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

type (
	// Step is one stage of the build pipeline.
	Step struct {
		Name string
		// Skip marks the step as externally satisfied; it is logged and
		// passed over without running.
		Skip bool
		Run  func(ctx context.Context) error
	}

	// Runner executes steps in order, logging progress and durations.
	Runner struct {
		logger *log.Logger
	}
)

// NewRunner creates a step runner writing progress through logger.
func NewRunner(logger *log.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the steps in order. The first failing step stops the run
// and its error, prefixed with the step name, is returned. A nil return
// means every non-skipped step passed.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if step.Skip {
			r.logger.Debug("step skipped", "step", step.Name)
			continue
		}

		start := time.Now()
		r.logger.Debug("step starting", "step", step.Name)
		if err := step.Run(ctx); err != nil {
			r.logger.Error("step failed", "step", step.Name, "duration", time.Since(start).Round(time.Millisecond))
			return fmt.Errorf("%s: %w", step.Name, err)
		}
		r.logger.Info("step done", "step", step.Name, "duration", time.Since(start).Round(time.Millisecond))
	}
	return nil
}
