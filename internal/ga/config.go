package ga

import (
	"fmt"
	"runtime"

	"memeticFlowShop/internal/flowshop"
)

type Config struct {
	Population     int
	Generations    int
	Elite          int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64

	// LocalSearchRate - вероятность применения локального поиска к потомку.
	LocalSearchRate float64

	// Workers - число горутин для оценки популяции; 0 - runtime.NumCPU().
	Workers int
}

func (c Config) Validate() error {
	if c.Population < 2 {
		return fmt.Errorf(
			"%w: размер популяции должен быть >= 2 (получено %d)",
			flowshop.ErrConfiguration, c.Population,
		)
	}
	// Родители объединяются в пары (2k, 2k+1)
	if c.Population%2 != 0 {
		return fmt.Errorf(
			"%w: размер популяции должен быть чётным (получено %d)",
			flowshop.ErrConfiguration, c.Population,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"%w: количество поколений должно быть > 0 (получено %d)",
			flowshop.ErrConfiguration, c.Generations,
		)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf(
			"%w: число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			flowshop.ErrConfiguration, c.Elite,
		)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf(
			"%w: размер турнира должен быть > 0 (получено %d)",
			flowshop.ErrConfiguration, c.TournamentSize,
		)
	}
	rates := []struct {
		name  string
		value float64
	}{
		{"кроссовера", c.CrossoverRate},
		{"мутации", c.MutationRate},
		{"локального поиска", c.LocalSearchRate},
	}
	for _, r := range rates {
		// !(0 <= v <= 1) отсекает и NaN
		if !(r.value >= 0 && r.value <= 1) {
			return fmt.Errorf(
				"%w: вероятность %s должна быть в диапазоне [0,1] (получено %f)",
				flowshop.ErrConfiguration, r.name, r.value,
			)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf(
			"%w: число воркеров должно быть >= 0 (получено %d)",
			flowshop.ErrConfiguration, c.Workers,
		)
	}
	return nil
}

// workers возвращает фактическое число горутин для оценки.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func DefaultConfig() Config {
	return Config{
		Population:      150,
		Generations:     500,
		Elite:           2,
		TournamentSize:  3,
		CrossoverRate:   0.85,
		MutationRate:    0.08,
		LocalSearchRate: 0.5,
		Workers:         0,
	}
}
