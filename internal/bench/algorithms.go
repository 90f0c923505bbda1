package bench

import (
	"log/slog"
	"math/rand"

	"memeticFlowShop/internal/ga"
	"memeticFlowShop/internal/opt"
)

// NewMemeticFactory возвращает фабрику солверов с общей конфигурацией и
// собственным генератором для каждого сида.
// Конфигурация проверяется один раз, при создании фабрики.
func NewMemeticFactory(cfg ga.Config, logger *slog.Logger) (func(seed int64) opt.Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return func(seed int64) opt.Optimizer {
		solver := &ga.Solver{Cfg: cfg, Rng: rand.New(rand.NewSource(seed))}
		if logger != nil {
			solver.Logger = logger.With("seed", seed)
		}
		return solver
	}, nil
}

// DefaultAlgorithms - меметический алгоритм (MA) и тот же ГА без локального
// поиска (GA) для сравнения.
func DefaultAlgorithms(cfg ga.Config, logger *slog.Logger) (map[string]Algorithm, error) {
	memetic, err := NewMemeticFactory(cfg, logger)
	if err != nil {
		return nil, err
	}
	plainCfg := cfg
	plainCfg.LocalSearchRate = 0
	plain, err := NewMemeticFactory(plainCfg, logger)
	if err != nil {
		return nil, err
	}
	return map[string]Algorithm{
		"MA": {Name: "MA", Factory: memetic},
		"GA": {Name: "GA", Factory: plain},
	}, nil
}
