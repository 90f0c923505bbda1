package ga

import (
	"context"
	"math/rand"

	"memeticFlowShop/internal/flowshop"
)

// Run строит экземпляр по матрице времён (строки - машины, столбцы - работы),
// запускает солвер с заданным сидом и возвращает лучший makespan и перестановку.
// Ошибки конфигурации возвращаются до запуска первого поколения.
func Run(ctx context.Context, times [][]int, cfg Config, seed int64, progress ProgressFunc) (int, []int, error) {
	inst, err := flowshop.FromMatrix(times)
	if err != nil {
		return 0, nil, err
	}
	solver, err := New(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return 0, nil, err
	}
	solver.OnGeneration = progress

	res, err := solver.Solve(ctx, inst)
	if err != nil {
		return res.Makespan, res.Permutation, err
	}
	return res.Makespan, res.Permutation, nil
}
