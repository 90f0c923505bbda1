// Package opt holds what every flowshop solver returns.
package opt

import (
	"context"
	"fmt"
	"time"

	"memeticFlowShop/internal/flowshop"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *flowshop.Instance) (Result, error)
}

type Result struct {
	Permutation []int
	Makespan    int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any

	// History - лучшее значение после каждой итерации.
	History []int
}

// Check re-evaluates the permutation on inst and compares it with the
// reported makespan.
func (r Result) Check(inst *flowshop.Instance) error {
	ms, err := flowshop.Makespan(inst, r.Permutation)
	if err != nil {
		return err
	}
	if ms != r.Makespan {
		return fmt.Errorf("reported makespan %d, permutation evaluates to %d", r.Makespan, ms)
	}
	return nil
}

// Gap is the distance of the makespan above lowerBound, in percent.
func (r Result) Gap(lowerBound int) float64 {
	if lowerBound <= 0 {
		return 0
	}
	return 100 * float64(r.Makespan-lowerBound) / float64(lowerBound)
}
