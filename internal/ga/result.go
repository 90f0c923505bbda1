package ga

import (
	"time"

	"memeticFlowShop/internal/opt"
)

// bestTracker хранит лучшее решение за весь запуск.
// Обновляется только при строгом улучшении.
type bestTracker struct {
	perm     []int
	makespan int
	set      bool
}

func newBestTracker(jobs int) *bestTracker {
	return &bestTracker{perm: make([]int, jobs)}
}

func (b *bestTracker) observe(pop [][]int, scores []int) {
	for i, ms := range scores {
		if !b.set || ms < b.makespan {
			b.makespan = ms
			copy(b.perm, pop[i])
			b.set = true
		}
	}
}

// result собирает opt.Result; перестановка копируется, трекер можно
// продолжать обновлять.
func (b *bestTracker) result(evals int64, gens int, history []int, start time.Time, meta map[string]any) opt.Result {
	perm := make([]int, len(b.perm))
	copy(perm, b.perm)
	return opt.Result{
		Permutation: perm,
		Makespan:    b.makespan,
		Evaluations: int(evals),
		Iterations:  gens,
		Duration:    time.Since(start),
		Meta:        meta,
		History:     history,
	}
}
